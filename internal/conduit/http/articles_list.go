package http

import (
	"net/http"
	"strconv"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/pkg/httpx"
)

type ArticleListHandler struct {
	ArticleService *service.ArticleService
}

// ServeHTTP godoc
//
//	@Summary		List articles
//	@Description	Filterable by tag, author, and favoriting user; newest first
//	@Tags			Articles
//	@Produce		json
//	@Param			tag			query		string	false	"Filter by tag"
//	@Param			author		query		string	false	"Filter by author username"
//	@Param			favorited	query		string	false	"Filter by favoriting username"
//	@Param			limit		query		int		false	"Page size (default 20, max 1000)"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	ArticlesEnvelope
//	@Failure		422			{object}	httpx.ValidationBody
//	@Router			/api/articles [get].
func (h *ArticleListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}

	q := domain.ArticleQuery{
		Tag:       queryParam(r, "tag"),
		Author:    queryParam(r, "author"),
		Favorited: queryParam(r, "favorited"),
		Limit:     limit,
		Offset:    offset,
	}
	if id, authed := httpx.UserIDFromContext(ctx); authed {
		q.Viewer = &id
	}

	views, total, err := h.ArticleService.List(ctx, q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, articlesPayload(views, total))
}

type FeedHandler struct {
	ArticleService *service.ArticleService
}

// ServeHTTP godoc
//
//	@Summary		Get the personal feed
//	@Description	Articles by followed authors, newest first
//	@Tags			Articles
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (default 20, max 1000)"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	ArticlesEnvelope
//	@Failure		401		"Missing or invalid token"
//	@Security		TokenAuth
//	@Router			/api/articles/feed [get].
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}

	views, total, err := h.ArticleService.Feed(ctx, userID, limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, articlesPayload(views, total))
}

// parsePagination reads limit/offset, writing the 422 itself on bad input.
// An absent limit comes back as -1, which the service maps to the default
// page size; limit=0 is a legitimate empty page.
func parsePagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit = -1

	fe := httpx.FieldErrors{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			fe.Add("limit", "is invalid")
		} else {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			fe.Add("offset", "is invalid")
		} else {
			offset = v
		}
	}

	if fe.HasErrors() {
		httpx.WriteValidation(w, fe)
		return 0, 0, false
	}
	return limit, offset, true
}

func queryParam(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}
