package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type tagsRepo struct {
	pool *pgxpool.Pool
}

func (r *tagsRepo) ListTags(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT unnest(tags) AS tag
		FROM articles
		GROUP BY tag
		ORDER BY count(*) DESC, tag ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
