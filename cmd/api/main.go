package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "maxtravel_booking/internal/adapters/http_server"
	"maxtravel_booking/internal/adapters/observability"
	redisad "maxtravel_booking/internal/adapters/redis"
	"maxtravel_booking/internal/adapters/tourvisio"
	"maxtravel_booking/internal/app"
	"maxtravel_booking/internal/auth"
	"maxtravel_booking/internal/cache"
	"maxtravel_booking/internal/domain"
	"maxtravel_booking/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	client, err := tourvisio.New(cfg.APIBase, cfg.ClientRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("tourvisio client init failed")
	}
	sessions := auth.NewManager(client, cfg.Credential())
	client.SetTokenSource(sessions)

	// shared snapshot store when Redis is configured, in-process otherwise
	var snaps domain.SnapshotStore = cache.NewStore()
	if cfg.RedisAddr != "" {
		snaps = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis snapshot store")
	}

	h := &server.Handlers{
		Auth:      sessions,
		Search:    app.NewSearchService(client, snaps),
		Details:   app.NewDetailService(client),
		Locations: app.NewLocationService(client, snaps),
	}

	srv := server.New(cfg.HTTPTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Str("api", cfg.APIBase).Msg("storefront API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
