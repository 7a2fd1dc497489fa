package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
	dsn  string
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return &Store{
		pool: pool,
		dsn:  dsn,
	}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Users() store.Users                             { return &usersRepo{pool: s.pool} }
func (s *Store) Profiles() store.Profiles                       { return &profilesRepo{pool: s.pool} }
func (s *Store) Articles() store.Articles                       { return &articlesRepo{pool: s.pool} }
func (s *Store) Favorites() store.Favorites                     { return &favoritesRepo{pool: s.pool} }
func (s *Store) Comments() store.Comments                       { return &commentsRepo{pool: s.pool} }
func (s *Store) Tags() store.Tags                               { return &tagsRepo{pool: s.pool} }
func (s *Store) ConfirmationTokens() store.ConfirmationTokens   { return &tokensRepo{pool: s.pool} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// Postgres error codes of interest.
const (
	codeUniqueViolation = "23505"
	codeFKViolation     = "23503"
	codeCheckViolation  = "23514"
)

// mapConstraint translates constraint violations into sentinel errors by
// constraint name, so handlers can produce field-scoped responses.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case "users_email_key":
			return store.ErrEmailTaken
		case "users_username_key":
			return store.ErrUsernameTaken
		case "articles_slug_key":
			return store.ErrDuplicateSlug
		}
	case codeCheckViolation:
		if pgErr.ConstraintName == "follows_no_self_follow" {
			return store.ErrSelfFollow
		}
	case codeFKViolation:
		// A valid token whose user row has since been deleted.
		if strings.Contains(pgErr.ConstraintName, "user_id") {
			return store.ErrUserGone
		}
	}

	return err
}
