package service

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/google/uuid"
)

// CommentService covers comments on articles.
type CommentService struct {
	Store      store.Store
	Moderation *ModerationService
}

// Add posts a moderated comment on an article.
func (s *CommentService) Add(ctx context.Context, articleSlug string, author uuid.UUID, body string) (domain.CommentView, error) {
	if err := s.Moderation.Check(ctx, body); err != nil {
		return domain.CommentView{}, err
	}
	return s.Store.Comments().CreateComment(ctx, articleSlug, author, body)
}

// List returns the comments on an article, newest first.
func (s *CommentService) List(ctx context.Context, articleSlug string, viewer *uuid.UUID) ([]domain.CommentView, error) {
	return s.Store.Comments().ListComments(ctx, articleSlug, viewer)
}

// Delete removes a comment owned by user.
func (s *CommentService) Delete(ctx context.Context, articleSlug string, commentID uuid.UUID, user uuid.UUID) error {
	return s.Store.Comments().DeleteComment(ctx, articleSlug, commentID, user)
}
