package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"play_comments/internal/shared"
)

type Server struct{ mux *chi.Mux }

func New(cfg shared.Config) *Server {
	m := chi.NewRouter()

	// Middlewares before any routes. The handler timeout has to outlive two
	// sequential upstream attempts at the configured HTTP timeout.
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(2*cfg.HTTPTimeout + 5*time.Second))
	if cfg.EnableCORS {
		m.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	if cfg.EnableRateLimit {
		m.Use(RateLimit(cfg.RateLimitWindow, cfg.RateLimitMax))
	}
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
