package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/config"
	"apparel-shopfront/internal/repository"
	"apparel-shopfront/internal/server"
	"apparel-shopfront/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}

	setupLogging(&cfg.Log)

	db, err := client.InitSqliteClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}

	backend := client.NewBackend(&cfg.Backend)
	sessionRepo := repository.NewSessionRepository(db)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go repository.SweepExpired(sweepCtx, sessionRepo, time.Hour)

	authService := service.NewAuthService(backend, sessionRepo, &cfg.Session)
	cartService := service.NewCartService(backend)
	paymentService := service.NewPaymentService(backend, backend)
	checkoutService := service.NewCheckoutService(backend, backend, cartService)
	orderService := service.NewOrderService(backend)
	catalogService := service.NewCatalogService(backend)
	adminService := service.NewAdminService(backend)

	srv := server.NewServer(cfg, server.Services{
		Auth:     authService,
		Cart:     cartService,
		Checkout: checkoutService,
		Orders:   orderService,
		Payments: paymentService,
		Catalog:  catalogService,
		Admin:    adminService,
	})

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info().Str("addr", serverAddr).Str("backend", cfg.Backend.BaseURL).Msg("starting shopfront")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, shutting down")

	stopSweep()
	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("http server shutdown error")
	}
}

func setupLogging(cfg *config.Log) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", "shopfront").Logger()
}
