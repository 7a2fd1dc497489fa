package http

import (
	"net/http"

	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP godoc
//
//	@Summary		Get a profile
//	@Description	Following is computed against the viewer when a token is supplied
//	@Tags			Profiles
//	@Produce		json
//	@Param			username	path		string	true	"Username"
//	@Success		200			{object}	ProfileEnvelope
//	@Failure		404			"No such user"
//	@Router			/api/profiles/{username} [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var viewer *uuid.UUID
	if id, ok := httpx.UserIDFromContext(ctx); ok {
		viewer = &id
	}

	profile, err := h.ProfileService.Get(ctx, r.PathValue("username"), viewer)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileEnvelope{Profile: profilePayload(profile)})
}

type FollowHandler struct {
	ProfileService *service.ProfileService
}

// HandleFollow godoc
//
//	@Summary	Follow a user
//	@Tags		Profiles
//	@Produce	json
//	@Param		username	path		string	true	"Username"
//	@Success	200			{object}	ProfileEnvelope
//	@Failure	404			"No such user"
//	@Failure	422			{object}	httpx.ValidationBody	"Attempted to follow yourself"
//	@Security	TokenAuth
//	@Router		/api/profiles/{username}/follow [post].
func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	profile, err := h.ProfileService.Follow(ctx, userID, r.PathValue("username"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileEnvelope{Profile: profilePayload(profile)})
}

// HandleUnfollow godoc
//
//	@Summary	Unfollow a user
//	@Tags		Profiles
//	@Produce	json
//	@Param		username	path		string	true	"Username"
//	@Success	200			{object}	ProfileEnvelope
//	@Failure	404			"No such user"
//	@Security	TokenAuth
//	@Router		/api/profiles/{username}/follow [delete].
func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	profile, err := h.ProfileService.Unfollow(ctx, userID, r.PathValue("username"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileEnvelope{Profile: profilePayload(profile)})
}
