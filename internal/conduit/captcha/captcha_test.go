package captcha

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "shh", r.Form.Get("secret"))

		w.Header().Set("Content-Type", "application/json")
		if r.Form.Get("response") == "good-token" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := NewVerifierWithEndpoint("shh", srv.URL)

	ok, err := v.Verify(t.Context(), "good-token")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = v.Verify(t.Context(), "bad-token")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	v := NewVerifierWithEndpoint("shh", srv.URL)

	_, err := v.Verify(t.Context(), "anything")
	require.Error(t, err)
}
