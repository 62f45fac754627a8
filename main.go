package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productconsole/client"
	"productconsole/config"
	"productconsole/handlers"
	"productconsole/logger"
	"productconsole/middleware"
	"productconsole/scheduler"
	"productconsole/services"
	"productconsole/session"
	"productconsole/telemetry"
)

func main() {
	cfg, err := config.LoadConsole()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}

	// 로거 초기화
	if err := logger.Initialize(cfg.Log.Logger("console.log")); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("🚀 Product Console Starting")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTELCollectorHost, "product-console")
	if err != nil {
		logger.Warn("Tracing disabled: %v", err)
	}

	// 백엔드 클라이언트와 서비스 계층
	api := client.New(client.Options{
		BaseURL:              cfg.APIBaseURL,
		Timeout:              cfg.APITimeout,
		TokenSecret:          cfg.APITokenSecret,
		MaskedDeleteStatuses: cfg.DeleteMaskStatuses(),
	})
	productService := services.NewProductService(api)
	workflow := services.NewWorkflow(productService)
	drafts := services.NewDraftStore(cfg.DraftTTL)

	sessions, err := session.NewManager(cfg.SessionSecret, cfg.SessionSecure)
	if err != nil {
		logger.Fatal("Failed to initialize sessions: %v", err)
	}

	// 만료된 폼 초안 정리
	jobs := scheduler.New()
	if err := jobs.Add("draft-sweep", "@every 10m", func(context.Context) error {
		if removed := drafts.Sweep(); removed > 0 {
			logger.Info("Removed %d expired drafts", removed)
		}
		return nil
	}); err != nil {
		logger.Fatal("Failed to schedule draft sweep: %v", err)
	}
	jobs.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	console := handlers.NewConsoleHandler(productService, workflow, drafts, sessions, cfg.MaxUploadMB<<20)
	console.Routes(mux,
		middleware.LoggingMiddleware,
		middleware.MetricsMiddleware,
		middleware.TracingMiddleware("product-console"),
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown 설정
	go func() {
		<-ctx.Done()
		logger.Warn("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		jobs.Stop(shutdownCtx)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracer shutdown failed: %v", err)
		}
	}()

	logger.Info("Server listening on %s", cfg.Addr)
	logger.Info("Product API: %s", api.BaseURL())
	logger.Info("Masked delete statuses: %v", cfg.DeleteMaskStatuses())
	logger.Info("Log directory: %s", cfg.Log.Dir)
	if cfg.SessionSecret == "change-this-session-secret" {
		logger.Warn("CONSOLE_SESSION_SECRET is the default value, set it before deploying")
	}
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed to start: %v", err)
	}
}
