package http

import (
	"errors"
	"net/http"

	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/jwtx"
)

type CurrentUserHandler struct {
	UserService *service.UserService
	Codec       *jwtx.Codec
}

// ServeHTTP godoc
//
//	@Summary	Get the current user
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	UserEnvelope
//	@Failure	401	"Missing or invalid token"
//	@Security	TokenAuth
//	@Router		/api/user [get].
func (h *CurrentUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	user, err := h.UserService.CurrentUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		// The token outlived the account.
		httpx.WriteUnauthorized(w)
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, ok := issueToken(w, r, h.Codec, user.ID)
	if !ok {
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userPayload(user, token))
}

type UpdateUserHandler struct {
	UserService *service.UserService
	Codec       *jwtx.Codec
}

type updateUserRequest struct {
	User struct {
		Email    *string        `json:"email"`
		Username *string        `json:"username"`
		Password *string        `json:"password"`
		Bio      *string        `json:"bio"`
		Image    OptionalString `json:"image"`
	} `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Update the current user
//	@Description	Partial update; "image": null clears the image
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		updateUserRequest	true	"Update payload"
//	@Success		200		{object}	UserEnvelope
//	@Failure		401		"Missing or invalid token"
//	@Failure		422		{object}	httpx.ValidationBody
//	@Security		TokenAuth
//	@Router			/api/user [put].
func (h *UpdateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteFieldError(w, "body", "is invalid")
		return
	}

	fe := httpx.FieldErrors{}
	if req.User.Email != nil {
		validateEmail(fe, *req.User.Email)
	}
	if req.User.Username != nil {
		validateUsername(fe, *req.User.Username)
	}
	if req.User.Password != nil {
		validatePassword(fe, *req.User.Password)
	}
	if fe.HasErrors() {
		httpx.WriteValidation(w, fe)
		return
	}

	params := service.UpdateUserParams{
		Email:    req.User.Email,
		Username: req.User.Username,
		Password: req.User.Password,
		Bio:      req.User.Bio,
	}
	if req.User.Image.Set {
		if req.User.Image.Value != nil {
			params.Image = req.User.Image.Value
		} else {
			empty := ""
			params.Image = &empty
		}
	}

	user, err := h.UserService.UpdateUser(ctx, userID, params)
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteUnauthorized(w)
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, ok := issueToken(w, r, h.Codec, user.ID)
	if !ok {
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userPayload(user, token))
}
