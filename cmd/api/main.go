package main

import (
	"errors"
	"net/http"
	"time"

	"aesgcm/internal/config"
	"aesgcm/internal/httpserver"
	"aesgcm/internal/logger"
	"aesgcm/internal/services/vector"
	"aesgcm/internal/store"
)

func main() {
	cfg, err := config.Load()
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()
	if err != nil {
		lg.Fatalw("config", "error", err)
	}
	if cfg.DatabaseURL == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}

	rep := vector.RunKnownAnswers()
	if !rep.Passed {
		for _, r := range rep.Results {
			if !r.OK {
				lg.Errorw("known answer mismatch", "name", r.Name, "expected", r.Expected, "computed", r.Computed, "error", r.Error)
			}
		}
		lg.Fatalw("self test failed", "failed", rep.Failed, "total", rep.Total)
	}
	lg.Infow("self test passed", "vectors", rep.Total)

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}

	router := httpserver.NewRouter(httpserver.Deps{
		Store:     st,
		Cache:     vector.NewCipherCache(cfg.CipherCacheSize),
		JWTSecret: cfg.JWTSecret,
		Log:       lg,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatalw("server stopped", "error", err)
	}
}
