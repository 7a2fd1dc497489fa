package httpx_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/jwtx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *jwtx.Codec {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	codec, err := jwtx.NewCodec(secret, 0)
	require.NoError(t, err)
	return codec
}

func echoUserHandler(t *testing.T, want uuid.UUID, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		got, ok := httpx.UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, want, got)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnAcceptsTokenAndBearerSchemes(t *testing.T) {
	t.Parallel()

	codec := testCodec(t)
	userID := uuid.New()
	token, err := codec.Issue(userID.String())
	require.NoError(t, err)

	for _, scheme := range []string{"Token ", "Bearer "} {
		var called bool
		handler := httpx.Authn(codec)(echoUserHandler(t, userID, &called))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", scheme+token)
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, called)
	}
}

func TestAuthnRejectsMissingAndMalformedTokens(t *testing.T) {
	t.Parallel()

	codec := testCodec(t)
	handler := httpx.Authn(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc",
		"empty token":  "Token ",
		"garbage":      "Token not.a.jwt",
	}

	for name, authz := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if authz != "" {
				req.Header.Set("Authorization", authz)
			}
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, "Token", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestOptionalAuthn(t *testing.T) {
	t.Parallel()

	codec := testCodec(t)

	// Anonymous requests pass through without a user in context.
	var anonymous bool
	handler := httpx.OptionalAuthn(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		anonymous = true
		_, ok := httpx.UserIDFromContext(r.Context())
		require.False(t, ok)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, anonymous)

	// A present-but-invalid token is still rejected.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token bogus")
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
