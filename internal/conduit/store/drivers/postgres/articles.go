package postgres

import (
	"context"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type articlesRepo struct {
	pool *pgxpool.Pool
}

// articleViewColumns projects an article row joined with its author into
// viewer-dependent view fields. Every query using it binds the viewer
// (possibly NULL) as $1 and aliases articles as a, users as u.
const articleViewColumns = `
	a.slug, a.title, a.description, a.body, a.tags, a.created_at, a.updated_at,
	($1::uuid IS NOT NULL AND EXISTS (
	    SELECT 1 FROM favorites f WHERE f.article_id = a.article_id AND f.user_id = $1
	)) AS favorited,
	(SELECT count(*) FROM favorites f WHERE f.article_id = a.article_id) AS favorites_count,
	u.username, u.bio, u.image,
	($1::uuid IS NOT NULL AND EXISTS (
	    SELECT 1 FROM follows w WHERE w.following_user_id = $1 AND w.followed_user_id = u.user_id
	)) AS following`

func scanArticleView(row pgx.Row, extra ...any) (domain.ArticleView, error) {
	var v domain.ArticleView
	dest := append(extra,
		&v.Slug, &v.Title, &v.Description, &v.Body, &v.Tags, &v.CreatedAt, &v.UpdatedAt,
		&v.Favorited, &v.FavoritesCount,
		&v.Author.Username, &v.Author.Bio, &v.Author.Image, &v.Author.Following,
	)
	if err := row.Scan(dest...); err != nil {
		return domain.ArticleView{}, err
	}
	return v, nil
}

func (r *articlesRepo) CreateArticle(ctx context.Context, a domain.Article) (domain.ArticleView, error) {
	// The author is bound as the viewer, so favorited/following come back
	// false for a fresh article.
	row := r.pool.QueryRow(ctx, `
		WITH a AS (
		    INSERT INTO articles (user_id, slug, title, description, body, tags)
		    VALUES ($1, $2, $3, $4, $5, $6)
		    RETURNING *
		)
		SELECT `+articleViewColumns+`
		FROM a
		JOIN users u ON u.user_id = a.user_id`,
		a.AuthorID, a.Slug, a.Title, a.Description, a.Body, a.Tags,
	)

	v, err := scanArticleView(row)
	if err != nil {
		return domain.ArticleView{}, mapConstraint(err)
	}
	return v, nil
}

func (r *articlesRepo) GetArticle(ctx context.Context, slug string, viewer *uuid.UUID) (domain.ArticleView, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+articleViewColumns+`
		FROM articles a
		JOIN users u ON u.user_id = a.user_id
		WHERE a.slug = $2`,
		viewer, slug,
	)

	v, err := scanArticleView(row)
	if err != nil {
		return domain.ArticleView{}, mapNotFound(err)
	}
	return v, nil
}

func (r *articlesRepo) UpdateArticle(ctx context.Context, slug string, author uuid.UUID, patch domain.ArticlePatch) (string, error) {
	// Single statement distinguishing "no such article" from "not yours":
	// target matches by slug alone, the update additionally by owner.
	var existed bool
	var newSlug *string
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT article_id, user_id FROM articles WHERE slug = $1
		), updated AS (
		    UPDATE articles SET
		        slug        = COALESCE($3, slug),
		        title       = COALESCE($4, title),
		        description = COALESCE($5, description),
		        body        = COALESCE($6, body),
		        updated_at  = now()
		    WHERE article_id = (SELECT article_id FROM target WHERE user_id = $2)
		    RETURNING slug
		)
		SELECT EXISTS (SELECT 1 FROM target),
		       (SELECT slug FROM updated)`,
		slug, author, patch.Slug, patch.Title, patch.Description, patch.Body,
	).Scan(&existed, &newSlug)
	if err != nil {
		return "", mapConstraint(err)
	}

	switch {
	case !existed:
		return "", store.ErrNotFound
	case newSlug == nil:
		return "", store.ErrForbidden
	}
	return *newSlug, nil
}

func (r *articlesRepo) DeleteArticle(ctx context.Context, slug string, author uuid.UUID) error {
	var existed, deleted bool
	err := r.pool.QueryRow(ctx, `
		WITH target AS (
		    SELECT article_id, user_id FROM articles WHERE slug = $1
		), deleted AS (
		    DELETE FROM articles
		    WHERE article_id = (SELECT article_id FROM target WHERE user_id = $2)
		    RETURNING article_id
		)
		SELECT EXISTS (SELECT 1 FROM target),
		       EXISTS (SELECT 1 FROM deleted)`,
		slug, author,
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

func (r *articlesRepo) ListArticles(ctx context.Context, q domain.ArticleQuery) ([]domain.ArticleView, int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT count(*) OVER () AS total, `+articleViewColumns+`
		FROM articles a
		JOIN users u ON u.user_id = a.user_id
		WHERE ($2::text IS NULL OR u.username = $2)
		  AND ($3::text IS NULL OR a.tags @> ARRAY[$3::text])
		  AND ($4::text IS NULL OR EXISTS (
		      SELECT 1 FROM favorites f
		      JOIN users fu ON fu.user_id = f.user_id
		      WHERE f.article_id = a.article_id AND fu.username = $4
		  ))
		ORDER BY a.created_at DESC
		LIMIT $5 OFFSET $6`,
		q.Viewer, q.Author, q.Tag, q.Favorited, q.Limit, q.Offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	views, total, err := collectArticlePage(rows)
	if err != nil {
		return nil, 0, err
	}

	// An empty page carries no window count, so fall back to a bare COUNT
	// with the same filters. A concurrent insert between the two queries
	// can skew the number slightly, which we tolerate.
	if len(views) == 0 {
		err = r.pool.QueryRow(ctx, `
			SELECT count(*)
			FROM articles a
			JOIN users u ON u.user_id = a.user_id
			WHERE ($1::text IS NULL OR u.username = $1)
			  AND ($2::text IS NULL OR a.tags @> ARRAY[$2::text])
			  AND ($3::text IS NULL OR EXISTS (
			      SELECT 1 FROM favorites f
			      JOIN users fu ON fu.user_id = f.user_id
			      WHERE f.article_id = a.article_id AND fu.username = $3
			  ))`,
			q.Author, q.Tag, q.Favorited,
		).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}

	return views, total, nil
}

func (r *articlesRepo) FeedArticles(ctx context.Context, viewer uuid.UUID, limit, offset int) ([]domain.ArticleView, int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT count(*) OVER () AS total, `+articleViewColumns+`
		FROM articles a
		JOIN users u ON u.user_id = a.user_id
		JOIN follows w ON w.followed_user_id = a.user_id AND w.following_user_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3`,
		viewer, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	views, total, err := collectArticlePage(rows)
	if err != nil {
		return nil, 0, err
	}

	if len(views) == 0 {
		err = r.pool.QueryRow(ctx, `
			SELECT count(*)
			FROM articles a
			JOIN follows w ON w.followed_user_id = a.user_id AND w.following_user_id = $1`,
			viewer,
		).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}

	return views, total, nil
}

func collectArticlePage(rows pgx.Rows) ([]domain.ArticleView, int64, error) {
	views := []domain.ArticleView{}
	var total int64

	for rows.Next() {
		v, err := scanArticleView(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return views, total, nil
}
