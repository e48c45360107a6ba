package shared_test

import (
	"testing"
	"time"

	"play_comments/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := shared.Load()
	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.PlayBase != "https://play.google.com" {
		t.Fatalf("PlayBase: %q", cfg.PlayBase)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout: %v", cfg.HTTPTimeout)
	}
	if cfg.DefaultLanguage != "en" || cfg.DefaultCountry != "us" {
		t.Fatalf("locale defaults: %q %q", cfg.DefaultLanguage, cfg.DefaultCountry)
	}
	if !cfg.EnableSampleFallback {
		t.Fatal("sample fallback should default on")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("RATE_LIMIT_MAX", "7")
	t.Setenv("ENABLE_CORS", "false")

	cfg := shared.Load()
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("HTTPTimeout: %v", cfg.HTTPTimeout)
	}
	if cfg.RateLimitMax != 7 {
		t.Fatalf("RateLimitMax: %d", cfg.RateLimitMax)
	}
	if cfg.EnableCORS {
		t.Fatal("ENABLE_CORS=false not honored")
	}
}

func TestLoad_DisablesRateLimitOnBadMax(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "0")
	cfg := shared.Load()
	if cfg.EnableRateLimit {
		t.Fatal("rate limiting should be disabled when max <= 0")
	}
}
