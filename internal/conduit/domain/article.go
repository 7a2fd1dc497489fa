package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is a published post. Slug is unique and derived from the title.
type Article struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Slug        string
	Title       string
	Description string
	Body        string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticleView is an article decorated with viewer-dependent fields.
type ArticleView struct {
	Slug           string
	Title          string
	Description    string
	Body           string
	Tags           []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Favorited      bool
	FavoritesCount int64
	Author         Profile
}

// ArticlePatch describes a partial article update. Slug must be
// recomputed by the caller when Title is set.
type ArticlePatch struct {
	Slug        *string
	Title       *string
	Description *string
	Body        *string
}

// ArticleQuery filters and paginates article listings.
type ArticleQuery struct {
	Tag       *string
	Author    *string
	Favorited *string
	Limit     int
	Offset    int
	Viewer    *uuid.UUID
}
