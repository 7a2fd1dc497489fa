package postgres

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type favoritesRepo struct {
	pool *pgxpool.Pool
}

func (r *favoritesRepo) Favorite(ctx context.Context, slug string, user uuid.UUID) error {
	var existed bool
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT article_id FROM articles WHERE slug = $1
		), inserted AS (
		    INSERT INTO favorites (article_id, user_id)
		    SELECT article_id, $2 FROM target
		    ON CONFLICT (article_id, user_id) DO NOTHING
		)
		SELECT EXISTS (SELECT 1 FROM target)`,
		slug, user,
	).Scan(&existed)
	if err != nil {
		return mapConstraint(err)
	}

	if !existed {
		return store.ErrNotFound
	}
	return nil
}

func (r *favoritesRepo) Unfavorite(ctx context.Context, slug string, user uuid.UUID) error {
	var existed bool
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT article_id FROM articles WHERE slug = $1
		), deleted AS (
		    DELETE FROM favorites
		    WHERE article_id IN (SELECT article_id FROM target) AND user_id = $2
		)
		SELECT EXISTS (SELECT 1 FROM target)`,
		slug, user,
	).Scan(&existed)
	if err != nil {
		return err
	}

	if !existed {
		return store.ErrNotFound
	}
	return nil
}
