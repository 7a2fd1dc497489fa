package http

import (
	"errors"
	"net/http"

	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/slogx"
)

// respondError maps store and service sentinels onto the HTTP error
// taxonomy. Anything unrecognized is logged and surfaced as an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteNotFound(w)
	case errors.Is(err, store.ErrForbidden):
		httpx.WriteForbidden(w)
	case errors.Is(err, store.ErrEmailTaken):
		httpx.WriteFieldError(w, "email", "is taken")
	case errors.Is(err, store.ErrUsernameTaken):
		httpx.WriteFieldError(w, "username", "is taken")
	case errors.Is(err, store.ErrDuplicateSlug):
		httpx.WriteFieldError(w, "title", "article with this title already exists")
	case errors.Is(err, store.ErrSelfFollow):
		httpx.WriteFieldError(w, "username", "cannot follow yourself")
	case errors.Is(err, store.ErrUserGone):
		// Valid token, deleted account.
		httpx.WriteUnauthorized(w)
	case errors.Is(err, service.ErrContentFlagged):
		httpx.WriteFieldError(w, "body", "has been flagged as inappropriate")
	case errors.Is(err, service.ErrContentUnprocessable):
		httpx.WriteFieldError(w, "body", "could not be processed for moderation")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteInternal(w)
	}
}
