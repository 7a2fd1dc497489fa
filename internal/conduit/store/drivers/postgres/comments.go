package postgres

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentsRepo struct {
	pool *pgxpool.Pool
}

func (r *commentsRepo) CreateComment(ctx context.Context, slug string, author uuid.UUID, body string) (domain.CommentView, error) {
	var c domain.CommentView
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT article_id FROM articles WHERE slug = $1
		), inserted AS (
		    INSERT INTO comments (article_id, user_id, body)
		    SELECT article_id, $2, $3 FROM target
		    RETURNING comment_id, user_id, body, created_at, updated_at
		)
		SELECT i.comment_id, i.body, i.created_at, i.updated_at,
		       u.username, u.bio, u.image
		FROM inserted i
		JOIN users u ON u.user_id = i.user_id`,
		slug, author, body,
	).Scan(
		&c.ID, &c.Body, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.Username, &c.Author.Bio, &c.Author.Image,
	)
	if err != nil {
		return domain.CommentView{}, mapConstraint(mapNotFound(err))
	}

	// The author never follows themself.
	c.Author.Following = false
	return c, nil
}

func (r *commentsRepo) ListComments(ctx context.Context, slug string, viewer *uuid.UUID) ([]domain.CommentView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.comment_id, c.body, c.created_at, c.updated_at,
		       u.username, u.bio, u.image,
		       ($2::uuid IS NOT NULL AND EXISTS (
		           SELECT 1 FROM follows w
		           WHERE w.following_user_id = $2 AND w.followed_user_id = u.user_id
		       )) AS following
		FROM comments c
		JOIN articles a ON a.article_id = c.article_id
		JOIN users u ON u.user_id = c.user_id
		WHERE a.slug = $1
		ORDER BY c.created_at DESC`,
		slug, viewer,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.CommentView{}
	for rows.Next() {
		var c domain.CommentView
		err := rows.Scan(
			&c.ID, &c.Body, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.Username, &c.Author.Bio, &c.Author.Image, &c.Author.Following,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentsRepo) DeleteComment(ctx context.Context, slug string, commentID uuid.UUID, user uuid.UUID) error {
	var existed, deleted bool
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT c.comment_id, c.user_id
		    FROM comments c
		    JOIN articles a ON a.article_id = c.article_id
		    WHERE a.slug = $1 AND c.comment_id = $2
		), deleted AS (
		    DELETE FROM comments
		    WHERE comment_id = (SELECT comment_id FROM target WHERE user_id = $3)
		    RETURNING comment_id
		)
		SELECT EXISTS (SELECT 1 FROM target),
		       EXISTS (SELECT 1 FROM deleted)`,
		slug, commentID, user,
	).Scan(&existed, &deleted)
	if err != nil {
		return err
	}

	switch {
	case !existed:
		return store.ErrNotFound
	case !deleted:
		return store.ErrForbidden
	}
	return nil
}
