package http

import (
	"net/http"
	"strings"

	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/slogx"
	"github.com/google/uuid"
)

type ArticleHandler struct {
	ArticleService *service.ArticleService
}

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

// HandleCreate godoc
//
//	@Summary		Create an article
//	@Description	The body passes the content moderation gate before publication
//	@Tags			Articles
//	@Accept			json
//	@Produce		json
//	@Param			body	body		createArticleRequest	true	"Article payload"
//	@Success		201		{object}	ArticleEnvelope
//	@Failure		422		{object}	httpx.ValidationBody
//	@Security		TokenAuth
//	@Router			/api/articles [post].
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID, _ := httpx.UserIDFromContext(ctx)

	var req createArticleRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteFieldError(w, "body", "is invalid")
		return
	}

	fe := httpx.FieldErrors{}
	validateRequired(fe, "title", req.Article.Title)
	validateRequired(fe, "description", req.Article.Description)
	validateRequired(fe, "body", req.Article.Body)
	tags := cleanTags(req.Article.TagList)
	if len(tags) == 0 {
		fe.Add("tagList", "must contain at least one tag")
	}
	if fe.HasErrors() {
		httpx.WriteValidation(w, fe)
		return
	}

	view, err := h.ArticleService.Create(ctx, userID, req.Article.Title, req.Article.Description, req.Article.Body, tags)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info("article published", "slug", view.Slug, "author_id", userID)
	httpx.WriteJSON(w, http.StatusCreated, ArticleEnvelope{Article: articlePayload(view)})
}

// HandleGet godoc
//
//	@Summary	Get an article
//	@Tags		Articles
//	@Produce	json
//	@Param		slug	path		string	true	"Article slug"
//	@Success	200		{object}	ArticleEnvelope
//	@Failure	404		"No such article"
//	@Router		/api/articles/{slug} [get].
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var viewer *uuid.UUID
	if id, ok := httpx.UserIDFromContext(ctx); ok {
		viewer = &id
	}

	view, err := h.ArticleService.Get(ctx, r.PathValue("slug"), viewer)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ArticleEnvelope{Article: articlePayload(view)})
}

type updateArticleRequest struct {
	Article struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
	} `json:"article"`
}

// HandleUpdate godoc
//
//	@Summary		Update an article
//	@Description	Partial update; the slug is recomputed when the title changes
//	@Tags			Articles
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string					true	"Article slug"
//	@Param			body	body		updateArticleRequest	true	"Update payload"
//	@Success		200		{object}	ArticleEnvelope
//	@Failure		403		"Not the author"
//	@Failure		404		"No such article"
//	@Failure		422		{object}	httpx.ValidationBody
//	@Security		TokenAuth
//	@Router			/api/articles/{slug} [put].
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	var req updateArticleRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteFieldError(w, "body", "is invalid")
		return
	}

	fe := httpx.FieldErrors{}
	if req.Article.Title != nil {
		validateRequired(fe, "title", *req.Article.Title)
	}
	if req.Article.Description != nil {
		validateRequired(fe, "description", *req.Article.Description)
	}
	if req.Article.Body != nil {
		validateRequired(fe, "body", *req.Article.Body)
	}
	if fe.HasErrors() {
		httpx.WriteValidation(w, fe)
		return
	}

	view, err := h.ArticleService.Update(ctx, r.PathValue("slug"), userID, service.UpdateArticleParams{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ArticleEnvelope{Article: articlePayload(view)})
}

// HandleDelete godoc
//
//	@Summary	Delete an article
//	@Tags		Articles
//	@Param		slug	path	string	true	"Article slug"
//	@Success	204		"Deleted"
//	@Failure	403		"Not the author"
//	@Failure	404		"No such article"
//	@Security	TokenAuth
//	@Router		/api/articles/{slug} [delete].
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	if err := h.ArticleService.Delete(ctx, r.PathValue("slug"), userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type FavoriteHandler struct {
	ArticleService *service.ArticleService
}

// HandleFavorite godoc
//
//	@Summary	Favorite an article
//	@Tags		Articles
//	@Produce	json
//	@Param		slug	path		string	true	"Article slug"
//	@Success	200		{object}	ArticleEnvelope
//	@Failure	404		"No such article"
//	@Security	TokenAuth
//	@Router		/api/articles/{slug}/favorite [post].
func (h *FavoriteHandler) HandleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	view, err := h.ArticleService.Favorite(ctx, r.PathValue("slug"), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ArticleEnvelope{Article: articlePayload(view)})
}

// HandleUnfavorite godoc
//
//	@Summary	Unfavorite an article
//	@Tags		Articles
//	@Produce	json
//	@Param		slug	path		string	true	"Article slug"
//	@Success	200		{object}	ArticleEnvelope
//	@Failure	404		"No such article"
//	@Security	TokenAuth
//	@Router		/api/articles/{slug}/favorite [delete].
func (h *FavoriteHandler) HandleUnfavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	view, err := h.ArticleService.Unfavorite(ctx, r.PathValue("slug"), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ArticleEnvelope{Article: articlePayload(view)})
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
