// @title        Health Log API
// @version      1.0
// @description  Personal health tracking: profile, water, sleep, activity and custom categories.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthlog/health-backend/internal/api"
	"github.com/healthlog/health-backend/internal/api/metrics"
	"github.com/healthlog/health-backend/internal/core/service"
	"github.com/healthlog/health-backend/internal/infrastructure/queue"
	"github.com/healthlog/health-backend/internal/infrastructure/storage"
	"github.com/healthlog/health-backend/internal/pkg/config"
	"github.com/healthlog/health-backend/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "healthlog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "healthlog",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Snapshot backends
	backends, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := backends.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("closing storage backends")
		}
	}()

	collector := metrics.NewCollector()

	// 2. Mirrors
	var mirror service.SnapshotPublisher
	var dispatcher *queue.Dispatcher
	if len(backends.Mirrors) > 0 {
		dispatcher = queue.NewDispatcher(backends.Mirrors, collector, log)
		dispatcher.Start()
		mirror = dispatcher
	}

	// 3. Service
	passwords, err := service.NewPasswordScheme(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}
	svc, err := service.NewHealthService(ctx, backends.Primary, log, service.Options{
		Passwords:   passwords,
		TokenLength: cfg.Auth.TokenLength,
		SaveTimeout: cfg.Storage.SaveTimeout,
		Mirror:      mirror,
		Recorder:    collector,
	})
	if err != nil {
		return err
	}

	// 4. HTTP
	router := api.NewRouter(api.Dependencies{
		Service:       svc,
		Pingers:       backends.Pingers(),
		Log:           log,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		AuthRateLimit: cfg.Auth.RateLimit,
		AuthRateBurst: cfg.Auth.RateBurst,
	})
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("storage", backends.Primary.Backend()).
			Int("mirrors", len(backends.Mirrors)).
			Msg("API server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server listen: %w", err)
		}
	}
	log.Info().Msg("shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := svc.Flush(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final snapshot save failed")
	}
	if dispatcher != nil {
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mirrors did not drain")
		}
	}

	log.Info().Msg("API server stopped gracefully")
	return nil
}
