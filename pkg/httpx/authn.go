package httpx

import (
	"net/http"
	"strings"

	"github.com/conduitlabs/conduit/pkg/jwtx"
	"github.com/conduitlabs/conduit/pkg/slogx"
	"github.com/google/uuid"
)

// Authn requires a valid session token in the Authorization header. Both
// "Token <jwt>" and "Bearer <jwt>" schemes are accepted.
func Authn(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := verifyRequestToken(codec, w, r)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), id)))
		})
	}
}

// OptionalAuthn lets requests without an Authorization header through as
// anonymous, but still rejects a present-but-invalid token.
func OptionalAuthn(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, ok := verifyRequestToken(codec, w, r)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), id)))
		})
	}
}

func verifyRequestToken(codec *jwtx.Codec, w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := slogx.FromContext(r.Context())

	raw, ok := extractToken(r.Header.Get("Authorization"))
	if !ok {
		WriteUnauthorized(w)
		return uuid.Nil, false
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		log.Warn("token verification failed", "err", err)
		WriteUnauthorized(w)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Warn("token subject is not a user id", "err", err)
		WriteUnauthorized(w)
		return uuid.Nil, false
	}

	return id, true
}

func extractToken(authz string) (string, bool) {
	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(authz, scheme) {
			raw := strings.TrimSpace(strings.TrimPrefix(authz, scheme))
			return raw, raw != ""
		}
	}
	return "", false
}
