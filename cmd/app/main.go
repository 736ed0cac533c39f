// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-platform/internal/config"
	payAdapters "school-platform/internal/infra/adapters/payment"
	"school-platform/internal/infra/adapters/resolver"
	pg "school-platform/internal/infra/db/postgres"
	"school-platform/internal/infra/logging"
	"school-platform/internal/infra/metrics"
	red "school-platform/internal/infra/redis"
	"school-platform/internal/infra/sched"
	"school-platform/internal/infra/security"
	"school-platform/internal/infra/web"
	"school-platform/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (insecure defaults allowed)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	rateLimiter := red.NewRateLimiter(redisClient)
	cartStore := red.NewCartStore(redisClient, cfg.Redis.CartTTL)

	// ---- Content encryption ----
	contentKey := cfg.Security.ContentKey
	if len(contentKey) != 32 {
		if !cfg.Runtime.Dev {
			logger.Fatal().Msg("security.content_key must be 32 bytes")
		}
		logger.Warn().Msg("security.content_key not set; falling back to dev key (INSECURE)")
		contentKey = "0123456789abcdef0123456789abcdef"
	}
	cipher, err := security.NewContentCipher(contentKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("content cipher")
	}

	// ---- Ticket signing ----
	signer, err := security.NewTokenSigner(cfg.Security.TicketSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("token signer")
	}
	var guard usecase.ReplayGuard
	if cfg.Security.ReplayGuard {
		guard = red.NewReplayGuard(redisClient)
		logger.Info().Msg("ticket replay guard enabled")
	}

	// ---- Repositories ----
	bookRepo := pg.NewPostgresBookRepo(pool, cipher)
	codeRepo := pg.NewPostgresAccessCodeRepo(pool)
	orderRepo := pg.NewPostgresOrderRepo(pool)

	// ---- Use cases ----
	ticketUC := usecase.NewTicketUseCase(signer, guard)
	contentResolver := resolver.NewRepoResolver(codeRepo, bookRepo)
	viewerUC := usecase.NewViewerUseCase(contentResolver, ticketUC, cfg.Security.TicketTTL, logger)
	catalogUC := usecase.NewCatalogUseCase(bookRepo, codeRepo)
	cartUC := usecase.NewCartUseCase(cartStore, bookRepo)

	provider := payAdapters.NewNoopProvider()
	if cfg.Payment.Provider != "noop" {
		logger.Fatal().Str("provider", cfg.Payment.Provider).Msg("unknown payment provider")
	}
	checkoutUC := usecase.NewCheckoutUseCase(cartStore, bookRepo, orderRepo, codeRepo, provider, logger)

	// ---- HTTP server ----
	srv := web.NewServer(
		viewerUC, ticketUC, catalogUC, cartUC, checkoutUC,
		rateLimiter, cfg.RateLimit.RedeemPerMinute,
		cfg.Admin.APIKey, provider.Name(), logger,
	)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Code expiry worker (hourly) ----
	worker := sched.NewCodeExpiryWorker(1*time.Hour, codeRepo, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
