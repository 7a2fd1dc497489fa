package http

import (
	"net/http"

	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/google/uuid"
)

const maxCommentLength = 500

type CommentHandler struct {
	CommentService *service.CommentService
}

type addCommentRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

// HandleAdd godoc
//
//	@Summary		Add a comment
//	@Description	The body passes the content moderation gate before publication
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string				true	"Article slug"
//	@Param			body	body		addCommentRequest	true	"Comment payload"
//	@Success		201		{object}	CommentEnvelope
//	@Failure		404		"No such article"
//	@Failure		422		{object}	httpx.ValidationBody
//	@Security		TokenAuth
//	@Router			/api/articles/{slug}/comments [post].
func (h *CommentHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	var req addCommentRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteFieldError(w, "body", "is invalid")
		return
	}

	fe := httpx.FieldErrors{}
	validateRequired(fe, "body", req.Comment.Body)
	if len(req.Comment.Body) > maxCommentLength {
		fe.Add("body", "must be at most 500 characters long")
	}
	if fe.HasErrors() {
		httpx.WriteValidation(w, fe)
		return
	}

	view, err := h.CommentService.Add(ctx, r.PathValue("slug"), userID, req.Comment.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, CommentEnvelope{Comment: commentPayload(view)})
}

// HandleList godoc
//
//	@Summary		List comments on an article
//	@Description	Newest first; following is computed against the viewer when a token is supplied
//	@Tags			Comments
//	@Produce		json
//	@Param			slug	path		string	true	"Article slug"
//	@Success		200		{object}	CommentsEnvelope
//	@Router			/api/articles/{slug}/comments [get].
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var viewer *uuid.UUID
	if id, ok := httpx.UserIDFromContext(ctx); ok {
		viewer = &id
	}

	views, err := h.CommentService.List(ctx, r.PathValue("slug"), viewer)
	if err != nil {
		respondError(w, r, err)
		return
	}

	payload := make([]CommentPayload, 0, len(views))
	for _, view := range views {
		payload = append(payload, commentPayload(view))
	}
	httpx.WriteJSON(w, http.StatusOK, CommentsEnvelope{Comments: payload})
}

// HandleDelete godoc
//
//	@Summary	Delete a comment
//	@Tags		Comments
//	@Param		slug	path	string	true	"Article slug"
//	@Param		id		path	string	true	"Comment id"
//	@Success	204		"Deleted"
//	@Failure	403		"Not the comment author"
//	@Failure	404		"No such article or comment"
//	@Security	TokenAuth
//	@Router		/api/articles/{slug}/comments/{id} [delete].
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	commentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteNotFound(w)
		return
	}

	if err := h.CommentService.Delete(ctx, r.PathValue("slug"), commentID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
