package conduit_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubModerationAPI flags any submission containing "inappropriate".
func stubModerationAPI(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		flagged := strings.Contains(string(raw), "inappropriate")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "modr-e2e",
			"model":   "omni-moderation-latest",
			"results": []map[string]any{{"flagged": flagged}},
		})
	}))
}

func TestModerationGate(t *testing.T) {
	stub := stubModerationAPI(t)
	defer stub.Close()

	s := newTestServer(t, withModerator(stub.URL))
	user := registerUser(t, s)

	t.Run("clean article passes", func(t *testing.T) {
		createArticle(t, s, user.Token, "Clean Content "+uniqueName("t"))
	})

	t.Run("flagged article is rejected", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/articles", user.Token, map[string]any{
			"article": map[string]any{
				"title":       uniqueName("flagged"),
				"description": "d",
				"body":        "something inappropriate",
				"tagList":     []string{"t"},
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "body"), "has been flagged as inappropriate")
	})

	t.Run("flagged comment is rejected", func(t *testing.T) {
		slug := createArticle(t, s, user.Token, "Comment Target "+uniqueName("t"))

		status, body := s.do(t, http.MethodPost, "/api/articles/"+slug+"/comments", user.Token, map[string]any{
			"comment": map[string]any{"body": "an inappropriate remark"},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "body"), "has been flagged as inappropriate")
	})

	t.Run("flagged update is rejected", func(t *testing.T) {
		slug := createArticle(t, s, user.Token, "Update Target "+uniqueName("t"))

		status, body := s.do(t, http.MethodPut, "/api/articles/"+slug, user.Token, map[string]any{
			"article": map[string]any{"body": "now inappropriate"},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "body"), "has been flagged as inappropriate")
	})
}
