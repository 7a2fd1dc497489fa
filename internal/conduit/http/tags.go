package http

import (
	"net/http"

	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/pkg/httpx"
)

type TagsHandler struct {
	Store store.Store
}

// ServeHTTP godoc
//
//	@Summary		List tags
//	@Description	All tags in use, most used first
//	@Tags			Tags
//	@Produce		json
//	@Success		200	{object}	TagsEnvelope
//	@Router			/api/tags [get].
func (h *TagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Store.Tags().ListTags(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	if tags == nil {
		tags = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, TagsEnvelope{Tags: tags})
}
