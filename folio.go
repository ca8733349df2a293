// Package folio is a Markdown blog server built with Go, Echo, and templ.
// Posts are files in a content directory; folio serves the pages, a JSON
// API, RSS and JSON feeds, and a sitemap from them.
//
// Page templates are pluggable through ViewFuncs; folio handles the
// handler logic, middleware, and content loading.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rikjimue/folio/content"
	"github.com/rikjimue/folio/views"
)

const shutdownTimeout = 5 * time.Second

// Posts is the read side of the post store the handlers depend on.
type Posts interface {
	ListPosts() []content.Post
	GetPost(slug string) (content.Post, bool)
	ListTags() []string
}

// ViewFuncs holds the templ components the handlers render. DefaultViews
// returns the built-in pages.
type ViewFuncs struct {
	Home        func(cfg views.SiteConfig, latest []content.Post) templ.Component
	Blog        func(cfg views.SiteConfig, idx views.BlogIndex) templ.Component
	Post        func(cfg views.SiteConfig, page views.PostPage) templ.Component
	NotFound    func(cfg views.SiteConfig) templ.Component
	ServerError func(cfg views.SiteConfig) templ.Component
}

// DefaultViews returns the pages from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Blog:        views.Blog,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central folio application. It wires together the post store,
// handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Posts  Posts
	Views  ViewFuncs
	Logger zerolog.Logger

	apiLimiter   *RateLimiter
	customRoutes []func(*App)
	now          func() time.Time
}

// Option configures additional App behavior.
type Option func(*App)

// WithPosts replaces the directory-backed store.
func WithPosts(p Posts) Option {
	return func(a *App) {
		a.Posts = p
	}
}

// WithViews replaces the built-in pages.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithLogger sets the logger for requests, errors and the post store.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithClock sets the time source used for feed build dates and the sitemap.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// New creates a folio App with the given configuration. Middleware and routes
// are registered immediately so the App can be served or tested through
// a.Echo.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
		Logger: log.Logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Posts == nil {
		a.Posts = content.NewStore(cfg.ContentDir,
			content.WithLogger(a.Logger),
			content.WithClock(a.now),
		)
	}
	if cfg.RateLimit > 0 {
		a.apiLimiter = NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		a.Logger.Info().Str("addr", a.Config.Addr).Str("content_dir", a.Config.ContentDir).Msg("starting server")
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("folio: shutdown: %w", err)
	}
	a.Logger.Info().Msg("server stopped")
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/public", echo.MustSubFS(EmbeddedAssets, "embedded"))
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlog)
	e.GET("/blog/:slug", a.handlePost)

	e.GET("/rss.xml", a.handleRSS)
	e.GET("/feed.json", a.handleJSONFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	api := e.Group("/api")
	if a.apiLimiter != nil {
		api.Use(a.rateLimitMiddleware)
	}
	api.GET("/blog", a.handleAPIPosts)
	api.GET("/blog/:slug", a.handleAPIPost)
}

// Close releases background resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.apiLimiter != nil {
		a.apiLimiter.Stop()
	}
	return nil
}
