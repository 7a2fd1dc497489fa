package postgres

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profilesRepo struct {
	pool *pgxpool.Pool
}

func (r *profilesRepo) GetProfile(ctx context.Context, username string, viewer *uuid.UUID) (domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT u.username, u.bio, u.image,
		       ($2::uuid IS NOT NULL AND EXISTS (
		           SELECT 1 FROM follows w
		           WHERE w.following_user_id = $2 AND w.followed_user_id = u.user_id
		       )) AS following
		FROM users u
		WHERE u.username = $1`,
		username, viewer,
	).Scan(&p.Username, &p.Bio, &p.Image, &p.Following)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) Follow(ctx context.Context, follower uuid.UUID, username string) (domain.Profile, error) {
	// The data-modifying CTE runs even though the outer SELECT only reads
	// the target. Self-follows trip the follows_no_self_follow CHECK.
	var p domain.Profile
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT user_id, username, bio, image FROM users WHERE username = $1
		), inserted AS (
		    INSERT INTO follows (following_user_id, followed_user_id)
		    SELECT $2, user_id FROM target
		    ON CONFLICT (following_user_id, followed_user_id) DO NOTHING
		)
		SELECT username, bio, image FROM target`,
		username, follower,
	).Scan(&p.Username, &p.Bio, &p.Image)
	if err != nil {
		return domain.Profile{}, mapConstraint(mapNotFound(err))
	}

	p.Following = true
	return p, nil
}

func (r *profilesRepo) Unfollow(ctx context.Context, follower uuid.UUID, username string) (domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT user_id, username, bio, image FROM users WHERE username = $1
		), deleted AS (
		    DELETE FROM follows
		    WHERE following_user_id = $2
		      AND followed_user_id IN (SELECT user_id FROM target)
		)
		SELECT username, bio, image FROM target`,
		username, follower,
	).Scan(&p.Username, &p.Bio, &p.Image)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}

	p.Following = false
	return p, nil
}
