package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteValidationAccumulates(t *testing.T) {
	t.Parallel()

	fe := httpx.FieldErrors{}
	fe.Add("email", "is taken")
	fe.Add("password", "must be at least 12 characters")
	fe.Add("password", "must not be empty")
	require.True(t, fe.HasErrors())

	rec := httptest.NewRecorder()
	httpx.WriteValidation(rec, fe)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body httpx.ValidationBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"is taken"}, body.Errors["email"])
	require.Len(t, body.Errors["password"], 2)
}

func TestWriteUnauthorizedSetsChallenge(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteUnauthorized(rec)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token", rec.Header().Get("WWW-Authenticate"))
}
