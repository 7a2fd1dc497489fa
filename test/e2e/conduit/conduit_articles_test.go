package conduit_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func articlePayload(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	article, ok := body["article"].(map[string]any)
	require.True(t, ok, "expected an article envelope, got: %v", body)
	return article
}

func articlesPayload(t *testing.T, body map[string]any) ([]map[string]any, int) {
	t.Helper()
	raw, ok := body["articles"].([]any)
	require.True(t, ok, "expected an articles envelope, got: %v", body)

	articles := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		articles = append(articles, item.(map[string]any))
	}
	count, ok := body["articlesCount"].(float64)
	require.True(t, ok, "expected articlesCount, got: %v", body)
	return articles, int(count)
}

func TestArticleLifecycle(t *testing.T) {
	s := newTestServer(t)
	author := registerUser(t, s)
	reader := registerUser(t, s)

	title := "Testing in Production " + uniqueName("t")
	slug := createArticle(t, s, author.Token, title)

	t.Run("get by slug", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/articles/"+slug, "", nil)
		require.Equal(t, http.StatusOK, status)

		article := articlePayload(t, body)
		require.Equal(t, title, article["title"])
		require.Equal(t, false, article["favorited"])
		require.Equal(t, float64(0), article["favoritesCount"])

		articleAuthor := article["author"].(map[string]any)
		require.Equal(t, author.Username, articleAuthor["username"])
	})

	t.Run("create requires a token", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/api/articles", "", map[string]any{
			"article": map[string]any{"title": "x", "description": "y", "body": "z", "tagList": []string{"a"}},
		})
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("create requires at least one tag", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/articles", author.Token, map[string]any{
			"article": map[string]any{
				"title":       uniqueName("untagged"),
				"description": "d",
				"body":        "b",
				"tagList":     []string{"  ", ""},
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "tagList"), "must contain at least one tag")
	})

	t.Run("update recomputes the slug on title change", func(t *testing.T) {
		newTitle := "Retitled " + uniqueName("t")
		status, body := s.do(t, http.MethodPut, "/api/articles/"+slug, author.Token, map[string]any{
			"article": map[string]any{"title": newTitle},
		})
		require.Equal(t, http.StatusOK, status)

		article := articlePayload(t, body)
		require.Equal(t, newTitle, article["title"])
		require.NotEqual(t, slug, article["slug"])
		slug = article["slug"].(string)

		// Body survived the partial update
		require.Equal(t, "the body of "+title, article["body"])
	})

	t.Run("update by a non-author is 403", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPut, "/api/articles/"+slug, reader.Token, map[string]any{
			"article": map[string]any{"title": "hijacked"},
		})
		require.Equal(t, http.StatusForbidden, status)
	})

	t.Run("delete by a non-author is 403", func(t *testing.T) {
		status, _ := s.do(t, http.MethodDelete, "/api/articles/"+slug, reader.Token, nil)
		require.Equal(t, http.StatusForbidden, status)
	})

	t.Run("delete of a missing article is 404", func(t *testing.T) {
		status, _ := s.do(t, http.MethodDelete, "/api/articles/"+uniqueName("missing"), author.Token, nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("delete by the author", func(t *testing.T) {
		status, _ := s.do(t, http.MethodDelete, "/api/articles/"+slug, author.Token, nil)
		require.Equal(t, http.StatusNoContent, status)

		status, _ = s.do(t, http.MethodGet, "/api/articles/"+slug, "", nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestFavorites(t *testing.T) {
	s := newTestServer(t)
	author := registerUser(t, s)
	fan := registerUser(t, s)

	slug := createArticle(t, s, author.Token, "Favorite Me "+uniqueName("t"))

	t.Run("favorite", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/articles/"+slug+"/favorite", fan.Token, nil)
		require.Equal(t, http.StatusOK, status)

		article := articlePayload(t, body)
		require.Equal(t, true, article["favorited"])
		require.Equal(t, float64(1), article["favoritesCount"])
	})

	t.Run("double favorite is idempotent", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/articles/"+slug+"/favorite", fan.Token, nil)
		require.Equal(t, http.StatusOK, status)

		article := articlePayload(t, body)
		require.Equal(t, true, article["favorited"])
		require.Equal(t, float64(1), article["favoritesCount"], "re-favoriting should not inflate the count")
	})

	t.Run("favorited is viewer-scoped", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/articles/"+slug, author.Token, nil)
		require.Equal(t, http.StatusOK, status)

		article := articlePayload(t, body)
		require.Equal(t, false, article["favorited"])
		require.Equal(t, float64(1), article["favoritesCount"])
	})

	t.Run("unfavorite", func(t *testing.T) {
		status, body := s.do(t, http.MethodDelete, "/api/articles/"+slug+"/favorite", fan.Token, nil)
		require.Equal(t, http.StatusOK, status)

		article := articlePayload(t, body)
		require.Equal(t, false, article["favorited"])
		require.Equal(t, float64(0), article["favoritesCount"])
	})

	t.Run("favorite of a missing article is 404", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/api/articles/"+uniqueName("missing")+"/favorite", fan.Token, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestArticleList(t *testing.T) {
	s := newTestServer(t)
	author := registerUser(t, s)
	fan := registerUser(t, s)

	var slugs []string
	for i := 0; i < 3; i++ {
		slugs = append(slugs, createArticle(t, s, author.Token, fmt.Sprintf("Listing %d %s", i, uniqueName("t"))))
	}
	_, _ = s.do(t, http.MethodPost, "/api/articles/"+slugs[1]+"/favorite", fan.Token, nil)

	byAuthor := "/api/articles?author=" + author.Username

	t.Run("filter by author, newest first", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, byAuthor, "", nil)
		require.Equal(t, http.StatusOK, status)

		articles, count := articlesPayload(t, body)
		require.Equal(t, 3, count)
		require.Len(t, articles, 3)
		require.Equal(t, slugs[2], articles[0]["slug"])
		require.Equal(t, slugs[0], articles[2]["slug"])
	})

	t.Run("filter by favoriting user", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/articles?favorited="+fan.Username, "", nil)
		require.Equal(t, http.StatusOK, status)

		articles, count := articlesPayload(t, body)
		require.Equal(t, 1, count)
		require.Len(t, articles, 1)
		require.Equal(t, slugs[1], articles[0]["slug"])
	})

	t.Run("pagination", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, byAuthor+"&limit=2&offset=2", "", nil)
		require.Equal(t, http.StatusOK, status)

		articles, count := articlesPayload(t, body)
		require.Equal(t, 3, count)
		require.Len(t, articles, 1)
		require.Equal(t, slugs[0], articles[0]["slug"])
	})

	t.Run("limit zero returns the count with no rows", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, byAuthor+"&limit=0", "", nil)
		require.Equal(t, http.StatusOK, status)

		articles, count := articlesPayload(t, body)
		require.Empty(t, articles)
		require.Equal(t, 3, count)
	})

	t.Run("non-numeric limit is 422", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, byAuthor+"&limit=lots", "", nil)
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "limit"), "is invalid")
	})

	t.Run("empty filter result", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/articles?author="+uniqueName("ghost"), "", nil)
		require.Equal(t, http.StatusOK, status)

		articles, count := articlesPayload(t, body)
		require.Empty(t, articles)
		require.Equal(t, 0, count)
	})
}

func TestFeed(t *testing.T) {
	s := newTestServer(t)
	author := registerUser(t, s)
	follower := registerUser(t, s)
	bystander := registerUser(t, s)

	slug := createArticle(t, s, author.Token, "Feed Me "+uniqueName("t"))

	status, _ := s.do(t, http.MethodPost, "/api/profiles/"+author.Username+"/follow", follower.Token, nil)
	require.Equal(t, http.StatusOK, status)

	t.Run("followed author appears in the feed", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/articles/feed", follower.Token, nil)
		require.Equal(t, http.StatusOK, status)

		articles, count := articlesPayload(t, body)
		require.Equal(t, 1, count)
		require.Len(t, articles, 1)
		require.Equal(t, slug, articles[0]["slug"])

		articleAuthor := articles[0]["author"].(map[string]any)
		require.Equal(t, true, articleAuthor["following"])
	})

	t.Run("non-follower gets an empty feed", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/articles/feed", bystander.Token, nil)
		require.Equal(t, http.StatusOK, status)

		articles, count := articlesPayload(t, body)
		require.Empty(t, articles)
		require.Equal(t, 0, count)
	})

	t.Run("feed requires a token", func(t *testing.T) {
		status, _ := s.do(t, http.MethodGet, "/api/articles/feed", "", nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestTags(t *testing.T) {
	s := newTestServer(t)
	author := registerUser(t, s)
	createArticle(t, s, author.Token, "Tagged "+uniqueName("t"))

	status, body := s.do(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, status)

	tags, ok := body["tags"].([]any)
	require.True(t, ok, "expected a tags envelope, got: %v", body)
	require.Contains(t, tags, "testing")
}
