package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sluzebnosc-pro/lead-platform/internal/api/router"
	"github.com/sluzebnosc-pro/lead-platform/internal/captcha"
	appconfig "github.com/sluzebnosc-pro/lead-platform/internal/config"
	"github.com/sluzebnosc-pro/lead-platform/internal/http/handlers"
	"github.com/sluzebnosc-pro/lead-platform/internal/leads"
	"github.com/sluzebnosc-pro/lead-platform/internal/notify"
	"github.com/sluzebnosc-pro/lead-platform/internal/observability/metrics"
	"github.com/sluzebnosc-pro/lead-platform/internal/ratelimit"
	"github.com/sluzebnosc-pro/lead-platform/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Lead storage: Postgres when configured, in-memory otherwise.
	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}
		repo = leads.NewPostgresRepository(pool)
		logger.Info("using postgres lead repository")
	} else {
		repo = leads.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory lead repository")
	}

	// Rate limit state: Redis when configured so the window is shared
	// across instances, in-memory otherwise.
	var store ratelimit.Store
	if cfg.RedisAddr != "" {
		redisOpts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		store = ratelimit.NewRedisStore(redis.NewClient(redisOpts))
		logger.Info("using redis rate limit store", "addr", cfg.RedisAddr)
	} else {
		store = ratelimit.NewMemoryStore()
		logger.Warn("REDIS_ADDR not set, using in-memory rate limit store")
	}
	limiter := ratelimit.New(store, cfg.RateLimitMax, cfg.RateLimitWindow)

	verifier := captcha.NewTurnstileVerifier(cfg.TurnstileSecretKey, logger)
	if cfg.TurnstileSecretKey == "" {
		logger.Warn("TURNSTILE_SECRET_KEY not set, all submissions will be rejected")
	}

	// Lead notifications: SendGrid when configured, logged no-op otherwise.
	var sender notify.EmailSender
	if cfg.SendGridAPIKey != "" {
		sender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	} else {
		sender = notify.NewStubEmailSender(logger)
		logger.Warn("SENDGRID_API_KEY not set, lead notifications disabled")
	}
	notifier := notify.NewService(sender, cfg.LeadRecipients, cfg.NotifyTimeout, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	leadMetrics := metrics.NewLeadMetrics(registry)

	leadHandler := handlers.NewLeadHandler(limiter, verifier, repo, notifier, leadMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadHandler:        leadHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TurnstileSiteKey:   cfg.TurnstileSiteKey,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
