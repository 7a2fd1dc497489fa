// Package store defines the persistence boundary. Drivers live under
// drivers/ and must honour the sentinel errors declared here so services
// and handlers can map them without knowing the backend.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/google/uuid"
)

var (
	// ErrNotFound reports a missing record.
	ErrNotFound = errors.New("store: not found")

	// ErrForbidden reports a mutation attempted by a non-owner.
	ErrForbidden = errors.New("store: forbidden")

	// ErrEmailTaken and ErrUsernameTaken report case-insensitive unique
	// violations on users.
	ErrEmailTaken    = errors.New("store: email taken")
	ErrUsernameTaken = errors.New("store: username taken")

	// ErrDuplicateSlug reports an article slug collision.
	ErrDuplicateSlug = errors.New("store: duplicate slug")

	// ErrSelfFollow reports an attempt to follow oneself.
	ErrSelfFollow = errors.New("store: cannot follow self")

	// ErrUserGone reports a write on behalf of a user whose row no longer
	// exists, i.e. a valid token for a deleted account.
	ErrUserGone = errors.New("store: user no longer exists")
)

// Store aggregates the repositories of the data model.
type Store interface {
	Users() Users
	Profiles() Profiles
	Articles() Articles
	Favorites() Favorites
	Comments() Comments
	Tags() Tags
	ConfirmationTokens() ConfirmationTokens

	// ApplyMigrations brings the schema up to date.
	ApplyMigrations() error

	// Ping verifies database connectivity, used by health checks.
	Ping(ctx context.Context) error

	Close() error
}

type Users interface {
	// CreateUser inserts a user and returns it with generated fields.
	// Returns ErrEmailTaken or ErrUsernameTaken on unique violations.
	CreateUser(ctx context.Context, email, username, passwordHash string, status domain.UserStatus) (domain.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateUser applies a partial update and returns the updated user.
	UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)

	// ActivateUser flips a pending user to ACTIVE.
	ActivateUser(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type Profiles interface {
	// GetProfile returns a user's public profile with Following computed
	// against the viewer (nil viewer means anonymous).
	GetProfile(ctx context.Context, username string, viewer *uuid.UUID) (domain.Profile, error)

	// Follow is an idempotent upsert. Returns ErrSelfFollow when follower
	// and target are the same user, ErrNotFound for an unknown username.
	Follow(ctx context.Context, follower uuid.UUID, username string) (domain.Profile, error)

	// Unfollow is an idempotent delete.
	Unfollow(ctx context.Context, follower uuid.UUID, username string) (domain.Profile, error)
}

type Articles interface {
	// CreateArticle returns ErrDuplicateSlug on a slug collision.
	CreateArticle(ctx context.Context, a domain.Article) (domain.ArticleView, error)

	GetArticle(ctx context.Context, slug string, viewer *uuid.UUID) (domain.ArticleView, error)

	// UpdateArticle patches an article owned by author. Returns the
	// resulting slug; ErrNotFound when no article has the slug,
	// ErrForbidden when it belongs to someone else.
	UpdateArticle(ctx context.Context, slug string, author uuid.UUID, patch domain.ArticlePatch) (string, error)

	// DeleteArticle removes an article owned by author, with the same
	// ErrNotFound/ErrForbidden contract as UpdateArticle.
	DeleteArticle(ctx context.Context, slug string, author uuid.UUID) error

	// ListArticles returns a page plus the total match count.
	ListArticles(ctx context.Context, q domain.ArticleQuery) ([]domain.ArticleView, int64, error)

	// FeedArticles pages over articles authored by users the viewer follows.
	FeedArticles(ctx context.Context, viewer uuid.UUID, limit, offset int) ([]domain.ArticleView, int64, error)
}

type Favorites interface {
	// Favorite and Unfavorite are idempotent. Both return ErrNotFound for
	// an unknown slug; Favorite returns ErrUserGone when the user row has
	// been deleted out from under a valid token.
	Favorite(ctx context.Context, slug string, user uuid.UUID) error
	Unfavorite(ctx context.Context, slug string, user uuid.UUID) error
}

type Comments interface {
	// CreateComment returns ErrNotFound for an unknown slug and
	// ErrUserGone for a dangling author.
	CreateComment(ctx context.Context, slug string, author uuid.UUID, body string) (domain.CommentView, error)

	ListComments(ctx context.Context, slug string, viewer *uuid.UUID) ([]domain.CommentView, error)

	// DeleteComment removes a comment owned by user: ErrNotFound when the
	// comment is missing from the article, ErrForbidden for non-owners.
	DeleteComment(ctx context.Context, slug string, commentID uuid.UUID, user uuid.UUID) error
}

type Tags interface {
	// ListTags returns distinct tags ordered by usage count descending.
	ListTags(ctx context.Context) ([]string, error)
}

type ConfirmationTokens interface {
	CreateConfirmationToken(ctx context.Context, t domain.ConfirmationToken) error

	// RedeemConfirmationToken atomically consumes an unexpired token and
	// returns the owning user ID. Returns ErrNotFound for unknown,
	// expired, or already-redeemed tokens.
	RedeemConfirmationToken(ctx context.Context, token string, purpose domain.TokenPurpose) (uuid.UUID, error)

	// DeleteExpiredConfirmationTokens sweeps tokens past their expiry.
	DeleteExpiredConfirmationTokens(ctx context.Context, now time.Time) error
}
