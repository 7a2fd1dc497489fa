package http

import (
	"encoding/json"
	"time"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/google/uuid"
)

// Wire envelopes. Every payload is wrapped in a single-key object:
// {"user": ...}, {"article": ...}, {"articles": [...], "articlesCount": n}.

type UserEnvelope struct {
	User UserPayload `json:"user"`
}

type UserPayload struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      string  `json:"bio"`
	Image    *string `json:"image"`
}

type ProfileEnvelope struct {
	Profile ProfilePayload `json:"profile"`
}

type ProfilePayload struct {
	Username  string  `json:"username"`
	Bio       string  `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

type ArticleEnvelope struct {
	Article ArticlePayload `json:"article"`
}

type ArticlesEnvelope struct {
	Articles      []ArticlePayload `json:"articles"`
	ArticlesCount int64            `json:"articlesCount"`
}

type ArticlePayload struct {
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Body           string         `json:"body"`
	TagList        []string       `json:"tagList"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Favorited      bool           `json:"favorited"`
	FavoritesCount int64          `json:"favoritesCount"`
	Author         ProfilePayload `json:"author"`
}

type CommentEnvelope struct {
	Comment CommentPayload `json:"comment"`
}

type CommentsEnvelope struct {
	Comments []CommentPayload `json:"comments"`
}

type CommentPayload struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Body      string         `json:"body"`
	Author    ProfilePayload `json:"author"`
}

type TagsEnvelope struct {
	Tags []string `json:"tags"`
}

func userPayload(u domain.User, token string) UserEnvelope {
	return UserEnvelope{User: UserPayload{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    nullable(u.Image),
	}}
}

func profilePayload(p domain.Profile) ProfilePayload {
	return ProfilePayload{
		Username:  p.Username,
		Bio:       p.Bio,
		Image:     nullable(p.Image),
		Following: p.Following,
	}
}

func articlePayload(v domain.ArticleView) ArticlePayload {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticlePayload{
		Slug:           v.Slug,
		Title:          v.Title,
		Description:    v.Description,
		Body:           v.Body,
		TagList:        tags,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Favorited:      v.Favorited,
		FavoritesCount: v.FavoritesCount,
		Author:         profilePayload(v.Author),
	}
}

func articlesPayload(views []domain.ArticleView, total int64) ArticlesEnvelope {
	articles := make([]ArticlePayload, 0, len(views))
	for _, v := range views {
		articles = append(articles, articlePayload(v))
	}
	return ArticlesEnvelope{Articles: articles, ArticlesCount: total}
}

func commentPayload(c domain.CommentView) CommentPayload {
	return CommentPayload{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
		Author:    profilePayload(c.Author),
	}
}

// An empty image is rendered as JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// OptionalString distinguishes an absent JSON field from an explicit null,
// which the account update endpoint uses to clear the image.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
