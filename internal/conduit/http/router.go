package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/conduitlabs/conduit/internal/conduit/service"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/pkg/httpx"
	"github.com/conduitlabs/conduit/pkg/jwtx"
	"github.com/conduitlabs/conduit/pkg/slogx"

	_ "github.com/conduitlabs/conduit/api/docs" // Swagger docs
	"github.com/swaggo/swag"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	UserService    *service.UserService
	ProfileService *service.ProfileService
	ArticleService *service.ArticleService
	CommentService *service.CommentService

	Captcha          CaptchaVerifier
	SkipCaptcha      bool
	SkipRateLimiting bool
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerProfiles()
	r.registerArticles()
	r.registerComments()
	r.registerTags()
	r.registerSystem()

	r.Mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, req *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			httpx.WriteInternal(w)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	})
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Conduit API
//	@version		0.1.0
//	@description	A social blogging platform API with email-confirmed accounts,
//	@description	JWT authentication, profiles and follows, articles with favorites
//	@description	and tags, comments, and a content moderation gate on publication.
//
//	@contact.name				Conduit Labs
//	@contact.url				https://github.com/conduitlabs/conduit
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Token {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// rateLimit returns the client rate limiting middleware for a route, or a
// no-op when rate limiting is disabled for tests.
func (r *Router) rateLimit(config httpx.RateLimitConfig) httpx.Middleware {
	if r.SkipRateLimiting {
		return func(next http.Handler) http.Handler { return next }
	}
	return httpx.RateLimitByClient(config)
}

func (r *Router) registerUsers() {
	captcha := captchaCheck{Verifier: r.Captcha, Skip: r.SkipCaptcha}

	// POST /api/users - very strict rate limit (account creation)
	registerHandler := &RegisterHandler{
		UserService: r.UserService,
		Codec:       r.codec,
		Captcha:     captcha,
	}
	r.Mux.Handle("POST /api/users",
		httpx.Chain(registerHandler,
			r.rateLimit(httpx.VeryStrictLimit),
		),
	)

	// POST /api/users/login - strict rate limit (authentication attempts)
	loginHandler := &LoginHandler{
		UserService: r.UserService,
		Codec:       r.codec,
		Captcha:     captcha,
	}
	r.Mux.Handle("POST /api/users/login",
		httpx.Chain(loginHandler,
			r.rateLimit(httpx.StrictLimit),
		),
	)

	// POST /api/users/confirm-email - very strict rate limit (prevent brute force of codes)
	confirmHandler := &ConfirmEmailHandler{
		UserService: r.UserService,
		Codec:       r.codec,
	}
	r.Mux.Handle("POST /api/users/confirm-email",
		httpx.Chain(confirmHandler,
			r.rateLimit(httpx.VeryStrictLimit),
		),
	)

	currentHandler := &CurrentUserHandler{UserService: r.UserService, Codec: r.codec}
	r.Mux.Handle("GET /api/user",
		httpx.Chain(currentHandler,
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)

	updateHandler := &UpdateUserHandler{UserService: r.UserService, Codec: r.codec}
	r.Mux.Handle("PUT /api/user",
		httpx.Chain(updateHandler,
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
}

func (r *Router) registerProfiles() {
	profileHandler := &ProfileHandler{ProfileService: r.ProfileService}
	r.Mux.Handle("GET /api/profiles/{username}",
		httpx.Chain(profileHandler,
			httpx.OptionalAuthn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)

	followHandler := &FollowHandler{ProfileService: r.ProfileService}
	r.Mux.Handle("POST /api/profiles/{username}/follow",
		httpx.Chain(http.HandlerFunc(followHandler.HandleFollow),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
	r.Mux.Handle("DELETE /api/profiles/{username}/follow",
		httpx.Chain(http.HandlerFunc(followHandler.HandleUnfollow),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
}

func (r *Router) registerArticles() {
	articleHandler := &ArticleHandler{ArticleService: r.ArticleService}

	// POST /api/articles - strict rate limit (publication goes through moderation)
	r.Mux.Handle("POST /api/articles",
		httpx.Chain(http.HandlerFunc(articleHandler.HandleCreate),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.StrictLimit),
		),
	)

	listHandler := &ArticleListHandler{ArticleService: r.ArticleService}
	r.Mux.Handle("GET /api/articles",
		httpx.Chain(listHandler,
			httpx.OptionalAuthn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)

	// The literal /feed pattern wins over the {slug} wildcard
	feedHandler := &FeedHandler{ArticleService: r.ArticleService}
	r.Mux.Handle("GET /api/articles/feed",
		httpx.Chain(feedHandler,
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)

	r.Mux.Handle("GET /api/articles/{slug}",
		httpx.Chain(http.HandlerFunc(articleHandler.HandleGet),
			httpx.OptionalAuthn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
	r.Mux.Handle("PUT /api/articles/{slug}",
		httpx.Chain(http.HandlerFunc(articleHandler.HandleUpdate),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("DELETE /api/articles/{slug}",
		httpx.Chain(http.HandlerFunc(articleHandler.HandleDelete),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)

	favoriteHandler := &FavoriteHandler{ArticleService: r.ArticleService}
	r.Mux.Handle("POST /api/articles/{slug}/favorite",
		httpx.Chain(http.HandlerFunc(favoriteHandler.HandleFavorite),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
	r.Mux.Handle("DELETE /api/articles/{slug}/favorite",
		httpx.Chain(http.HandlerFunc(favoriteHandler.HandleUnfavorite),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
}

func (r *Router) registerComments() {
	h := &CommentHandler{CommentService: r.CommentService}

	r.Mux.Handle("POST /api/articles/{slug}/comments",
		httpx.Chain(http.HandlerFunc(h.HandleAdd),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
	r.Mux.Handle("GET /api/articles/{slug}/comments",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.OptionalAuthn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
	r.Mux.Handle("DELETE /api/articles/{slug}/comments/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.Authn(r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
}

func (r *Router) registerTags() {
	h := &TagsHandler{Store: r.store}
	r.Mux.Handle("GET /api/tags",
		httpx.Chain(h,
			r.rateLimit(httpx.BasicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently, so no strict limit here
	r.Mux.Handle("GET /healthz",
		httpx.Chain(HealthzHandler(r.startTime, r.buildVersion, r.store, r.codec),
			r.rateLimit(httpx.BasicLimit),
		),
	)
}
