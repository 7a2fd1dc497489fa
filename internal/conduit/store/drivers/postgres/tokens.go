package postgres

import (
	"context"
	"time"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type tokensRepo struct {
	pool *pgxpool.Pool
}

func (r *tokensRepo) CreateConfirmationToken(ctx context.Context, t domain.ConfirmationToken) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO confirmation_tokens (token, purpose, user_id, expires_at)
		VALUES ($1, $2, $3, $4)`,
		t.Token, string(t.Purpose), t.UserID, t.ExpiresAt,
	)
	return mapConstraint(err)
}

func (r *tokensRepo) RedeemConfirmationToken(ctx context.Context, token string, purpose domain.TokenPurpose) (uuid.UUID, error) {
	// DELETE ... RETURNING makes redemption single-use and atomic.
	var userID uuid.UUID
	err := r.pool.QueryRow(ctx, `
		DELETE FROM confirmation_tokens
		WHERE token = $1 AND purpose = $2 AND expires_at > now()
		RETURNING user_id`,
		token, string(purpose),
	).Scan(&userID)
	if err != nil {
		return uuid.Nil, mapNotFound(err)
	}
	return userID, nil
}

func (r *tokensRepo) DeleteExpiredConfirmationTokens(ctx context.Context, now time.Time) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM confirmation_tokens WHERE expires_at <= $1`, now)
	return err
}
