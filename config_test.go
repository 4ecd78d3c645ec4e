package paintdry

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SITE_TITLE", "")
	t.Setenv("ENTRY_CACHE_TTL", "")
	t.Setenv("ADDR", "")
	t.Setenv("PUBLIC_ID_MIN_LENGTH", "")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title != "Watching Paint Dry" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.EntryCacheTTL != 5*time.Minute {
		t.Errorf("EntryCacheTTL = %v", cfg.EntryCacheTTL)
	}
	if cfg.PublicIDMinLength != defaultIDMinLength {
		t.Errorf("PublicIDMinLength = %d", cfg.PublicIDMinLength)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SITE_TITLE", "Gloss")
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ENTRY_CACHE_TTL", "30s")
	t.Setenv("PUBLIC_ID_MIN_LENGTH", "8")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title != "Gloss" || cfg.AdminPassword != "pw" || !cfg.CookieSecure {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.EntryCacheTTL != 30*time.Second {
		t.Errorf("EntryCacheTTL = %v", cfg.EntryCacheTTL)
	}
	if cfg.PublicIDMinLength != 8 {
		t.Errorf("PublicIDMinLength = %d", cfg.PublicIDMinLength)
	}
}

func TestLoadConfigBadValue(t *testing.T) {
	t.Setenv("ENTRY_CACHE_TTL", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected a parse error")
	}
}
