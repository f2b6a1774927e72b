package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/extreamsys/contact-api/internal/adapters/email"
	"github.com/extreamsys/contact-api/internal/adapters/http/clientip"
	httpHandlers "github.com/extreamsys/contact-api/internal/adapters/http/handlers"
	httpMiddleware "github.com/extreamsys/contact-api/internal/adapters/http/middleware"
	memorystorage "github.com/extreamsys/contact-api/internal/adapters/storage/memory"
	redisstorage "github.com/extreamsys/contact-api/internal/adapters/storage/redis"
	"github.com/extreamsys/contact-api/internal/adapters/turnstile"
	"github.com/extreamsys/contact-api/internal/config"
	"github.com/extreamsys/contact-api/internal/core/ports"
	"github.com/extreamsys/contact-api/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	storage, closeFn, err := initStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer closeFn()

	limiter, err := services.NewRateLimiterService(storage, cfg.RateLimiter.Rules)
	if err != nil {
		log.Fatalf("failed to create limiter: %v", err)
	}

	penalty, err := services.NewPenaltyBoxService(storage, cfg.Penalty.Threshold, cfg.Penalty.TTL)
	if err != nil {
		log.Fatalf("failed to create penalty box: %v", err)
	}

	audit := services.NewAuditLoggerService(storage, logger, cfg.Admission.AuditTTL)

	verifier, err := turnstile.New(cfg.Turnstile.SecretKey, turnstile.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to create challenge verifier: %v", err)
	}

	dispatcher, err := email.NewPostmarkDispatcher(email.Config{
		Token:       cfg.Email.Token,
		From:        cfg.Email.From,
		ReplyTo:     cfg.Email.ReplyTo,
		NotifyEmail: cfg.Email.NotifyEmail,
	})
	if err != nil {
		log.Fatalf("failed to create email dispatcher: %v", err)
	}

	admission, err := services.NewAdmissionService(services.AdmissionDeps{
		Limiter:    limiter,
		Penalty:    penalty,
		Verifier:   verifier,
		Dispatcher: dispatcher,
		Audit:      audit,
		ResolveIP:  clientip.FromHeaders,
		Logger:     logger,
	}, services.AdmissionConfig{
		MaxBodyBytes: cfg.Admission.MaxBodyBytes,
		FailPolicy:   services.FailPolicy(cfg.Storage.FailPolicy),
	})
	if err != nil {
		log.Fatalf("failed to create admission pipeline: %v", err)
	}

	contactHandler := httpHandlers.NewContactHandler(admission, cfg.IsDevelopment())
	newsletterHandler := httpHandlers.NewNewsletterHandler(admission, cfg.IsDevelopment())

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", httpHandlers.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Use(httpMiddleware.NewGlobalRateLimit(httpMiddleware.GlobalRateLimitOptions{
			Limiter:    limiter,
			Penalty:    penalty,
			Audit:      audit,
			FailPolicy: services.FailPolicy(cfg.Storage.FailPolicy),
			Logger:     logger,
		}))
		r.Post("/contact", contactHandler.Handle)
		r.Options("/contact", httpHandlers.Preflight)
		r.Post("/newsletter", newsletterHandler.Handle)
		r.Options("/newsletter", httpHandlers.Preflight)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil {
			errCh <- err
		}
	}()

	logger.Info("server listening", "port", cfg.Server.Port, "storage", cfg.Storage.Type, "failPolicy", cfg.Storage.FailPolicy)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func initStorage(cfg config.StorageConfig) (ports.Storage, func(), error) {
	switch cfg.Type {
	case "redis":
		storage, err := redisstorage.New(redisstorage.Config{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				log.Printf("failed to close redis storage: %v", err)
			}
		}, nil
	case "memory":
		storage := memorystorage.New()
		return storage, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
