package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "play_comments/internal/adapters/http_server"
	"play_comments/internal/adapters/observability"
	"play_comments/internal/adapters/playstore"
	"play_comments/internal/app"
	"play_comments/internal/extract"
	"play_comments/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// deps
	client := playstore.New(cfg.PlayBase, cfg.HTTPTimeout, cfg.MaxRedirects, cfg.UpstreamRPS)
	engine := extract.NewEngine()
	svc := app.NewService(client, engine, cfg.EnableSampleFallback)

	// http
	srv := server.New(cfg)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc, Cfg: cfg})

	log.Info().Str("addr", cfg.HTTPAddr).Str("upstream", cfg.PlayBase).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
