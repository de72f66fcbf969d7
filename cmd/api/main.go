package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"pousada_manicaca/internal/adapters/bucket"
	server "pousada_manicaca/internal/adapters/http_server"
	"pousada_manicaca/internal/adapters/observability"
	redisad "pousada_manicaca/internal/adapters/redis"
	"pousada_manicaca/internal/app"
	"pousada_manicaca/internal/shared"
	mysqlrepo "pousada_manicaca/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	store, err := bucket.New(cfg.StorageBaseURL, cfg.StorageBucket, cfg.StorageKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("storage client init failed")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewContentService(repo, store, cache, cfg.CacheTTL)
	resolver := app.NewResolver(store, cache, cfg.PlaceholderURL)

	// initial content load; partial success is fine, total failure is not fatal
	// either since the admin can hit /v1/admin/refresh once the DB is back.
	if err := svc.Load(context.Background()); err != nil {
		log.Warn().Err(err).Msg("initial content load failed")
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc, Res: resolver, AdminToken: cfg.AdminToken})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
