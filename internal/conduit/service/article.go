package service

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	defaultPageSize = 20
	maxPageSize     = 1000
)

// ArticleService covers article CRUD, listings, the personal feed, and
// favorites. Bodies pass the moderation gate before any write.
type ArticleService struct {
	Store      store.Store
	Moderation *ModerationService
}

// Create publishes a new article. The slug is derived from the title;
// a collision surfaces as store.ErrDuplicateSlug.
func (s *ArticleService) Create(ctx context.Context, author uuid.UUID, title, description, body string, tags []string) (domain.ArticleView, error) {
	if err := s.Moderation.Check(ctx, body); err != nil {
		return domain.ArticleView{}, err
	}

	return s.Store.Articles().CreateArticle(ctx, domain.Article{
		AuthorID:    author,
		Slug:        slug.Make(title),
		Title:       title,
		Description: description,
		Body:        body,
		Tags:        tags,
	})
}

// Get loads a single article as seen by the viewer.
func (s *ArticleService) Get(ctx context.Context, articleSlug string, viewer *uuid.UUID) (domain.ArticleView, error) {
	return s.Store.Articles().GetArticle(ctx, articleSlug, viewer)
}

// UpdateArticleParams is a partial article update.
type UpdateArticleParams struct {
	Title       *string
	Description *string
	Body        *string
}

// Update patches an article owned by author. The slug is recomputed only
// when the title changes; a new body is re-moderated.
func (s *ArticleService) Update(ctx context.Context, articleSlug string, author uuid.UUID, params UpdateArticleParams) (domain.ArticleView, error) {
	if params.Body != nil {
		if err := s.Moderation.Check(ctx, *params.Body); err != nil {
			return domain.ArticleView{}, err
		}
	}

	patch := domain.ArticlePatch{
		Title:       params.Title,
		Description: params.Description,
		Body:        params.Body,
	}
	if params.Title != nil {
		newSlug := slug.Make(*params.Title)
		patch.Slug = &newSlug
	}

	updatedSlug, err := s.Store.Articles().UpdateArticle(ctx, articleSlug, author, patch)
	if err != nil {
		return domain.ArticleView{}, err
	}

	return s.Store.Articles().GetArticle(ctx, updatedSlug, &author)
}

// Delete removes an article owned by author.
func (s *ArticleService) Delete(ctx context.Context, articleSlug string, author uuid.UUID) error {
	return s.Store.Articles().DeleteArticle(ctx, articleSlug, author)
}

// List returns a filtered page of articles plus the total match count.
// A negative limit selects the default page size; limit=0 is honoured and
// yields an empty page with an accurate count.
func (s *ArticleService) List(ctx context.Context, q domain.ArticleQuery) ([]domain.ArticleView, int64, error) {
	q.Limit, q.Offset = clampPage(q.Limit, q.Offset)
	return s.Store.Articles().ListArticles(ctx, q)
}

// Feed pages over articles authored by users the viewer follows.
func (s *ArticleService) Feed(ctx context.Context, viewer uuid.UUID, limit, offset int) ([]domain.ArticleView, int64, error) {
	limit, offset = clampPage(limit, offset)
	return s.Store.Articles().FeedArticles(ctx, viewer, limit, offset)
}

// Favorite marks an article as favorited by user and returns the updated
// view. Repeats are no-ops.
func (s *ArticleService) Favorite(ctx context.Context, articleSlug string, user uuid.UUID) (domain.ArticleView, error) {
	if err := s.Store.Favorites().Favorite(ctx, articleSlug, user); err != nil {
		return domain.ArticleView{}, err
	}
	return s.Store.Articles().GetArticle(ctx, articleSlug, &user)
}

// Unfavorite removes a favorite. Repeats are no-ops.
func (s *ArticleService) Unfavorite(ctx context.Context, articleSlug string, user uuid.UUID) (domain.ArticleView, error) {
	if err := s.Store.Favorites().Unfavorite(ctx, articleSlug, user); err != nil {
		return domain.ArticleView{}, err
	}
	return s.Store.Articles().GetArticle(ctx, articleSlug, &user)
}

func clampPage(limit, offset int) (int, int) {
	if limit < 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
