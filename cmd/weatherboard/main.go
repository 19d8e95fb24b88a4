package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pdelacruz/weatherboard/internal/cache"
	"github.com/pdelacruz/weatherboard/internal/config"
	"github.com/pdelacruz/weatherboard/internal/geocode"
	"github.com/pdelacruz/weatherboard/internal/openweather"
	"github.com/pdelacruz/weatherboard/internal/scheduler"
	"github.com/pdelacruz/weatherboard/internal/weatherboard"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	logger := baseLogger.Sugar()

	var store cache.Store
	switch cfg.CacheEngine {
	case config.EngineRedis:
		store = cache.NewRedis(cfg.RedisAddr, logger)
	default:
		store = cache.NewMemory()
	}

	ow := openweather.New(
		openweather.ApiKeyOption(cfg.OWMAPIKey),
		openweather.BaseUrlOption(cfg.OWMBaseURL),
		openweather.HttpClientOption(&http.Client{Timeout: cfg.HTTPTimeout}),
	)

	resolver := geocode.NewResolver(ow, store, logger)
	fetcher := weatherboard.NewFetcher(ow, store, logger)
	svc := weatherboard.New(cfg, resolver, fetcher, logger)

	warmer := scheduler.New(cfg.DefaultCity, cfg.WarmInterval, svc, logger)
	if err := warmer.Start(); err != nil {
		logger.Fatalw("failed to start cache warmer", "error", err.Error())
	}
	defer warmer.Stop()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      svc.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infow("listening", "addr", cfg.Addr(), "cache_engine", cfg.CacheEngine)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server stopped", "error", err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("error during shutdown", "error", err.Error())
	}
}
