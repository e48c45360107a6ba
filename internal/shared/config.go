package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	PlayBase        string
	DefaultLanguage string
	DefaultCountry  string
	HTTPTimeout     time.Duration
	MaxRedirects    int
	UpstreamRPS     int

	RateLimitWindow time.Duration
	RateLimitMax    int

	EnableRateLimit      bool
	EnableCORS           bool
	EnableSampleFallback bool
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":3000"),
		MetricsAddr: env("METRICS_ADDR", ""),

		PlayBase:        env("PLAY_BASE_URL", "https://play.google.com"),
		DefaultLanguage: env("DEFAULT_LANGUAGE", "en"),
		DefaultCountry:  env("DEFAULT_COUNTRY", "us"),
		HTTPTimeout:     time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxRedirects:    atoi("MAX_REDIRECTS", 5),
		UpstreamRPS:     atoi("UPSTREAM_RPS", 5),

		RateLimitWindow: time.Duration(atoi("RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,
		RateLimitMax:    atoi("RATE_LIMIT_MAX", 100),

		EnableRateLimit:      envBool("ENABLE_RATE_LIMIT", true),
		EnableCORS:           envBool("ENABLE_CORS", true),
		EnableSampleFallback: envBool("ENABLE_SAMPLE_FALLBACK", true),
	}
	if c.RateLimitMax <= 0 {
		log.Warn().Msg("RATE_LIMIT_MAX <= 0, rate limiting disabled")
		c.EnableRateLimit = false
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
