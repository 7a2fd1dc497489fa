package httpx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

// ContextWithUserID returns a context carrying the authenticated user ID.
func ContextWithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}

// UserIDFromContext returns the authenticated user ID, if any. Requests
// that passed through OptionalAuthn without a token report ok=false.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(uuid.UUID)
	return id, ok
}
