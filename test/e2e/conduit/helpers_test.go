package conduit_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	httpapi "github.com/conduitlabs/conduit/internal/conduit/http"
	"github.com/conduitlabs/conduit/internal/conduit/mailer"
	"github.com/conduitlabs/conduit/internal/conduit/moderator"
	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/internal/conduit/store/drivers/postgres"
	"github.com/conduitlabs/conduit/pkg/jwtx"
	"github.com/conduitlabs/conduit/pkg/slogx"
)

/*
 * Common helpers for the API end-to-end tests. A single Postgres container
 * backs all tests; every test server runs in-process over it with captcha
 * and rate limiting disabled unless a test opts back in. Tests isolate
 * themselves through unique emails and usernames rather than database
 * resets.
 */

const testPassword = "correct-horse-battery"

var (
	testDSN       string
	testJWTSecret = base64.StdEncoding.EncodeToString([]byte("conduit-e2e-secret-32-bytes-long"))

	codePattern = regexp.MustCompile(`\b\d{8}\b`)
)

// TestMain starts one Postgres container for the whole suite.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("conduit"),
		tcpostgres.WithUsername("conduit"),
		tcpostgres.WithPassword("conduit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	testDSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve connection string: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	exitCode := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate container: %v\n", err)
	}

	os.Exit(exitCode)
}

// captureMailer records outgoing mail so tests can read confirmation codes.
type captureMailer struct {
	mu       sync.Mutex
	messages map[string][]mailer.Message // keyed by recipient
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{messages: make(map[string][]mailer.Message)}
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.To] = append(m.messages[msg.To], msg)
	return nil
}

// confirmationCode returns the 8-digit code from the latest mail sent to the
// address.
func (m *captureMailer) confirmationCode(t *testing.T, to string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.messages[to]
	require.NotEmpty(t, msgs, "expected a confirmation email for %s", to)

	code := codePattern.FindString(msgs[len(msgs)-1].Text)
	require.NotEmpty(t, code, "confirmation email should contain an 8-digit code")
	return code
}

type serverConfig struct {
	emailVerification bool
	rateLimiting      bool
	moderatorURL      string
}

type serverOption func(*serverConfig)

// withEmailVerification registers accounts as pending and mails codes.
func withEmailVerification() serverOption {
	return func(c *serverConfig) { c.emailVerification = true }
}

// withRateLimiting enables the production per-route limits.
func withRateLimiting() serverOption {
	return func(c *serverConfig) { c.rateLimiting = true }
}

// withModerator points the moderation gate at a stub endpoint.
func withModerator(url string) serverOption {
	return func(c *serverConfig) { c.moderatorURL = url }
}

type testServer struct {
	URL    string
	mailer *captureMailer
}

// newTestServer wires the full API in-process against the shared database.
func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	ctx := context.Background()

	var cfg serverConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := slogx.New(slogx.Config{
		Service: "conduit-api",
		Version: "test",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	st, err := postgres.NewStore(ctx, testDSN)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(testJWTSecret, jwtx.DefaultTTL)
	require.NoError(t, err)

	mail := newCaptureMailer()

	moderation := &service.ModerationService{
		Skip:   cfg.moderatorURL == "",
		Logger: logger,
	}
	if cfg.moderatorURL != "" {
		moderation.Moderator = moderator.NewWithBaseURL("test-key", cfg.moderatorURL)
	}

	userService := &service.UserService{
		Store:                 st,
		Mailer:                mail,
		Logger:                logger,
		SkipEmailVerification: !cfg.emailVerification,
	}

	router := httpapi.NewRouter(codec, "test", st, logger)
	router.UserService = userService
	router.ProfileService = &service.ProfileService{Store: st}
	router.ArticleService = &service.ArticleService{Store: st, Moderation: moderation}
	router.CommentService = &service.CommentService{Store: st, Moderation: moderation}
	router.SkipCaptcha = true
	router.SkipRateLimiting = !cfg.rateLimiting
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = st.Close()
	})

	return &testServer{URL: srv.URL, mailer: mail}
}

// do performs a JSON request and decodes the response body into a generic map.
// The body map is nil for empty responses.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}

// uniqueName returns a name safe to reuse across tests sharing the database.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

type testUser struct {
	Email    string
	Username string
	Token    string
}

// registerUser creates an account and returns its session token.
func registerUser(t *testing.T, s *testServer) testUser {
	t.Helper()

	username := uniqueName("user")
	email := username + "@example.com"

	status, body := s.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"user": map[string]any{
			"email":    email,
			"username": username,
			"password": testPassword,
		},
	})
	require.Equal(t, http.StatusCreated, status, "register should succeed: %v", body)

	token := userField(t, body, "token")
	require.NotEmpty(t, token)

	return testUser{Email: email, Username: username, Token: token}
}

// userField digs a string field out of a {"user": {...}} envelope.
func userField(t *testing.T, body map[string]any, field string) string {
	t.Helper()
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "expected a user envelope, got: %v", body)
	value, _ := user[field].(string)
	return value
}

// fieldErrors extracts the messages for one field of a validation response.
func fieldErrors(t *testing.T, body map[string]any, field string) []string {
	t.Helper()
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "expected a validation envelope, got: %v", body)

	raw, ok := errs[field].([]any)
	require.True(t, ok, "expected errors for field %q, got: %v", field, errs)

	out := make([]string, 0, len(raw))
	for _, msg := range raw {
		out = append(out, msg.(string))
	}
	return out
}

// createArticle publishes an article and returns its slug.
func createArticle(t *testing.T, s *testServer, token, title string) string {
	t.Helper()

	status, body := s.do(t, http.MethodPost, "/api/articles", token, map[string]any{
		"article": map[string]any{
			"title":       title,
			"description": "about " + title,
			"body":        "the body of " + title,
			"tagList":     []string{"testing", uniqueName("tag")},
		},
	})
	require.Equal(t, http.StatusCreated, status, "create article should succeed: %v", body)

	article, ok := body["article"].(map[string]any)
	require.True(t, ok)
	slug, _ := article["slug"].(string)
	require.NotEmpty(t, slug)
	return slug
}
