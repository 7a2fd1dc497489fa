package conduit_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing fields accumulate errors", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"user": map[string]any{},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "email"), "can't be blank")
		require.Contains(t, fieldErrors(t, body, "username"), "can't be blank")
		require.Contains(t, fieldErrors(t, body, "password"), "can't be blank")
	})

	t.Run("short password rejected", func(t *testing.T) {
		username := uniqueName("user")
		status, body := s.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"user": map[string]any{
				"email":    username + "@example.com",
				"username": username,
				"password": "short",
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "password"), "must be at least 12 characters long")
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		username := uniqueName("user")
		status, body := s.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"user": map[string]any{
				"email":    "not-an-email",
				"username": username,
				"password": testPassword,
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "email"), "is invalid")
	})
}

func TestRegisterDuplicates(t *testing.T) {
	s := newTestServer(t)
	user := registerUser(t, s)

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"user": map[string]any{
				"email":    strings.ToUpper(user.Email),
				"username": uniqueName("user"),
				"password": testPassword,
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "email"), "is taken")
	})

	t.Run("duplicate username is case-insensitive", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/users", "", map[string]any{
			"user": map[string]any{
				"email":    uniqueName("user") + "@example.com",
				"username": strings.ToUpper(user.Username),
				"password": testPassword,
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "username"), "is taken")
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	user := registerUser(t, s)

	t.Run("valid credentials", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/users/login", "", map[string]any{
			"user": map[string]any{
				"email":    user.Email,
				"password": testPassword,
			},
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, user.Username, userField(t, body, "username"))
		require.NotEmpty(t, userField(t, body, "token"))
	})

	t.Run("wrong password does not reveal which field failed", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/users/login", "", map[string]any{
			"user": map[string]any{
				"email":    user.Email,
				"password": "definitely-wrong-pass",
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "email or password"), "is invalid")
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/users/login", "", map[string]any{
			"user": map[string]any{
				"email":    "nobody@example.com",
				"password": testPassword,
			},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
		require.Contains(t, fieldErrors(t, body, "email or password"), "is invalid")
	})
}

func TestCurrentUser(t *testing.T) {
	s := newTestServer(t)
	user := registerUser(t, s)

	t.Run("with token", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/user", user.Token, nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, user.Email, userField(t, body, "email"))
		require.NotEmpty(t, userField(t, body, "token"), "response should carry a fresh token")
	})

	t.Run("without token", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/api/user")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Token", resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("with garbage token", func(t *testing.T) {
		status, _ := s.do(t, http.MethodGet, "/api/user", "not-a-jwt", nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestUpdateUser(t *testing.T) {
	s := newTestServer(t)
	user := registerUser(t, s)

	t.Run("set bio and image", func(t *testing.T) {
		status, body := s.do(t, http.MethodPut, "/api/user", user.Token, map[string]any{
			"user": map[string]any{
				"bio":   "gopher",
				"image": "https://example.com/avatar.png",
			},
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "gopher", userField(t, body, "bio"))
		require.Equal(t, "https://example.com/avatar.png", userField(t, body, "image"))
	})

	t.Run("null image clears it", func(t *testing.T) {
		status, body := s.do(t, http.MethodPut, "/api/user", user.Token, map[string]any{
			"user": map[string]any{
				"image": nil,
			},
		})
		require.Equal(t, http.StatusOK, status)

		u, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Contains(t, u, "image")
		require.Nil(t, u["image"], "cleared image should serialize as null")
	})

	t.Run("untouched fields survive", func(t *testing.T) {
		status, body := s.do(t, http.MethodGet, "/api/user", user.Token, nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "gopher", userField(t, body, "bio"))
		require.Equal(t, user.Email, userField(t, body, "email"))
	})

	t.Run("password change takes effect", func(t *testing.T) {
		newPassword := "another-long-password"
		status, _ := s.do(t, http.MethodPut, "/api/user", user.Token, map[string]any{
			"user": map[string]any{"password": newPassword},
		})
		require.Equal(t, http.StatusOK, status)

		status, _ = s.do(t, http.MethodPost, "/api/users/login", "", map[string]any{
			"user": map[string]any{"email": user.Email, "password": newPassword},
		})
		require.Equal(t, http.StatusOK, status)

		status, _ = s.do(t, http.MethodPost, "/api/users/login", "", map[string]any{
			"user": map[string]any{"email": user.Email, "password": testPassword},
		})
		require.Equal(t, http.StatusUnprocessableEntity, status)
	})
}
