// Package paintdry is a small blog built with Go, Echo, and templ. A Blog
// lists the ten most recent published posts, and each post is wrapped in an
// exhibit that picks the partial its body is rendered with.
//
// Users provide the HTML through the ViewFuncs struct; paintdry handles the
// handler logic, middleware, and database operations.
package paintdry

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/paintdry/exhibit"
)

// ViewFuncs holds the components the App renders pages with.
type ViewFuncs struct {
	Home           func(blog *Blog, entries []any, siteURL string) templ.Component
	Post           func(blog *Blog, entry any, siteURL string) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []*Post, message string, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component

	// Partials backs the rendering context handed to post exhibits.
	Partials exhibit.Partials
}

// App wires together the store, entry cache, blog, exhibits, handlers,
// middleware, and user-provided views.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *EntryCache
	Blog     *Blog
	Exhibits *exhibit.Selector
	Views    ViewFuncs

	loginLimiter *LoginLimiter
	clock        Clock
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Exhibits:  exhibit.Default(),
		Views:     views,
		clock:     SystemClock,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the database and registers middleware and routes. Start
// calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if err := a.Config.validate(); err != nil {
		return err
	}

	ids, err := NewIDCodec(a.Config.PublicIDMinLength)
	if err != nil {
		return err
	}
	store, err := NewStore(a.Config.DatabasePath, ids)
	if err != nil {
		return fmt.Errorf("paintdry: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewEntryCache(a.Store.ListPosts, a.Config.EntryCacheTTL)
	a.Blog = NewBlog(a.Cache.Fetch,
		WithTitle(a.Config.Title),
		WithSubtitle(a.Config.Subtitle),
		WithPostSource(a.Store.NewPost),
	)

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the App up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("%s listening on %s", a.Config.Title, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet, falling through to the user's static dir for
	// everything else under /public.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/posts/:id/", a.handlePost)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/posts/", a.handleAdminCreate)
	e.POST("/admin/posts/:id/publish/", a.handleAdminPublish)
	e.POST("/admin/posts/:id/delete/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.POST("/admin/images/:filename/delete/", a.handleImageDelete)
}

// Close releases the database and background workers.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
