package postgres

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct {
	pool *pgxpool.Pool
}

const userColumns = `user_id, email, username, password_hash, bio, image, status, created_at, updated_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	var status string
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Bio, &u.Image, &status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Status = domain.UserStatus(status)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, email, username, passwordHash string, status domain.UserStatus) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		email, username, passwordHash, string(status),
	)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	// email is citext, so the match is case-insensitive.
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			email         = COALESCE($2, email),
			username      = COALESCE($3, username),
			password_hash = COALESCE($4, password_hash),
			bio           = COALESCE($5, bio),
			image         = COALESCE($6, image),
			updated_at    = now()
		WHERE user_id = $1
		RETURNING `+userColumns,
		id, patch.Email, patch.Username, patch.PasswordHash, patch.Bio, patch.Image,
	)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapConstraint(mapNotFound(err))
	}
	return u, nil
}

func (r *usersRepo) ActivateUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET status = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING `+userColumns,
		id, string(domain.UserStatusActive),
	)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
