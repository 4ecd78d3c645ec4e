package paintdry

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// SiteConfig holds all configuration for a paintdry site.
type SiteConfig struct {
	Title    string `env:"SITE_TITLE"`    // Blog title (default "Watching Paint Dry")
	Subtitle string `env:"SITE_SUBTITLE"` // Blog subtitle
	URL      string `env:"SITE_URL"`      // Canonical URL (default "http://localhost:3000")
	Author   string `env:"SITE_AUTHOR"`   // Author name for JSON-LD

	Addr         string `env:"ADDR"`          // Listen address (default ":3000")
	DatabasePath string `env:"DATABASE_PATH"` // SQLite path (default "data/blog.db")

	AdminPassword string `env:"ADMIN_PASSWORD"`       // Required: admin login password
	SessionSecret string `env:"ADMIN_SESSION_SECRET"` // Required: session encryption secret
	CookieSecure  bool   `env:"COOKIE_SECURE"`        // Set true for HTTPS

	EntryCacheTTL     time.Duration `env:"ENTRY_CACHE_TTL"`      // Entry cache TTL (default 5m)
	PublicIDMinLength uint8         `env:"PUBLIC_ID_MIN_LENGTH"` // Minimum length of post IDs in URLs (default 6)
}

// LoadConfig reads a SiteConfig from the environment and applies defaults.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("paintdry: parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Subtitle == "" {
		c.Subtitle = defaultSubtitle
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.EntryCacheTTL == 0 {
		c.EntryCacheTTL = 5 * time.Minute
	}
	if c.PublicIDMinLength == 0 {
		c.PublicIDMinLength = defaultIDMinLength
	}
}

func (c SiteConfig) validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("paintdry: AdminPassword is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("paintdry: SessionSecret is required")
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithClock sets the time source used when publishing posts.
func WithClock(clock Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
