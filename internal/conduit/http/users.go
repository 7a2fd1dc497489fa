package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/jwtx"
	"github.com/conduitlabs/conduit/pkg/slogx"
	"github.com/google/uuid"
)

// CaptchaVerifier checks a client-side captcha response token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// captchaCheck wraps the verifier with the skip flag used in dev and test
// environments.
type captchaCheck struct {
	Verifier CaptchaVerifier
	Skip     bool
}

// pass writes the 422 itself when the captcha fails.
func (c captchaCheck) pass(w http.ResponseWriter, r *http.Request, token *string) bool {
	if c.Skip {
		return true
	}
	if token == nil || *token == "" {
		httpx.WriteFieldError(w, "captcha", "can't be blank")
		return false
	}

	ok, err := c.Verifier.Verify(r.Context(), *token)
	if err != nil {
		respondError(w, r, err)
		return false
	}
	if !ok {
		httpx.WriteFieldError(w, "captcha", "is invalid or expired")
		return false
	}
	return true
}

func issueToken(w http.ResponseWriter, r *http.Request, codec *jwtx.Codec, userID uuid.UUID) (string, bool) {
	token, err := codec.Issue(userID.String())
	if err != nil {
		respondError(w, r, err)
		return "", false
	}
	return token, true
}

type RegisterHandler struct {
	UserService *service.UserService
	Codec       *jwtx.Codec
	Captcha     captchaCheck
}

type registerRequest struct {
	User struct {
		Email    string  `json:"email"`
		Username string  `json:"username"`
		Password string  `json:"password"`
		Captcha  *string `json:"captcha"`
	} `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Register a new user
//	@Description	Creates an account and emails a confirmation code unless verification is disabled
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration payload"
//	@Success		201		{object}	UserEnvelope
//	@Failure		422		{object}	httpx.ValidationBody
//	@Router			/api/users [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteFieldError(w, "body", "is invalid")
		return
	}

	fe := httpx.FieldErrors{}
	validateEmail(fe, req.User.Email)
	validateUsername(fe, req.User.Username)
	validatePassword(fe, req.User.Password)
	if fe.HasErrors() {
		httpx.WriteValidation(w, fe)
		return
	}

	if !h.Captcha.pass(w, r, req.User.Captcha) {
		return
	}

	user, err := h.UserService.Register(ctx, req.User.Email, req.User.Username, req.User.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, ok := issueToken(w, r, h.Codec, user.ID)
	if !ok {
		return
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	httpx.WriteJSON(w, http.StatusCreated, userPayload(user, token))
}

type LoginHandler struct {
	UserService *service.UserService
	Codec       *jwtx.Codec
	Captcha     captchaCheck
}

type loginRequest struct {
	User struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Captcha  *string `json:"captcha"`
	} `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary	Log in
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginRequest	true	"Login payload"
//	@Success	200		{object}	UserEnvelope
//	@Failure	422		{object}	httpx.ValidationBody
//	@Router		/api/users/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteFieldError(w, "body", "is invalid")
		return
	}

	if !h.Captcha.pass(w, r, req.User.Captcha) {
		return
	}

	user, err := h.UserService.Login(ctx, req.User.Email, req.User.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		httpx.WriteFieldError(w, "email or password", "is invalid")
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

type ConfirmEmailHandler struct {
	UserService *service.UserService
	Codec       *jwtx.Codec
}

type confirmEmailRequest struct {
	User struct {
		OTP string `json:"otp"`
	} `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Confirm email address
//	@Description	Redeems the emailed one-time code and activates the account
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		confirmEmailRequest	true	"Confirmation payload"
//	@Success		200		{object}	UserEnvelope
//	@Failure		422		{object}	httpx.ValidationBody
//	@Router			/api/users/confirm-email [post].
func (h *ConfirmEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req confirmEmailRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteFieldError(w, "body", "is invalid")
		return
	}

	if req.User.OTP == "" {
		httpx.WriteFieldError(w, "otp", "can't be blank")
		return
	}

	user, err := h.UserService.ConfirmEmail(ctx, req.User.OTP)
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteFieldError(w, "otp", "is invalid or expired")
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
