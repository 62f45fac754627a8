package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"productconsole/catalog"
	"productconsole/config"
	"productconsole/database"
	_ "productconsole/docs" // Swagger 문서
	"productconsole/logger"
	"productconsole/middleware"
	"productconsole/scheduler"
	"productconsole/telemetry"
)

// @title Product Catalog API
// @version 1.0
// @description 제품 콘솔이 사용하는 제품/첨부 파일 백엔드
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 서비스 JWT 토큰. 형식: Bearer {token}

func main() {
	cfg, err := config.LoadCatalog()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Log.Logger("catalog.log")); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("🚀 Product Catalog Starting")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTELCollectorHost, "product-catalog")
	if err != nil {
		logger.Warn("Tracing disabled: %v", err)
	}

	db, err := database.Open(cfg.DBType, cfg.DSN)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := catalog.NewStore(database.NewSQLExecutor(db))
	blobs, err := catalog.NewBlobStore(cfg.StorageDir)
	if err != nil {
		logger.Fatal("Failed to prepare file storage: %v", err)
	}

	// 고아 파일 정리 (서버 시작 시 한 번, 이후 주기적으로)
	sweeper := catalog.NewSweeper(store, blobs, catalog.DefaultSweepGrace)
	jobs := scheduler.New()
	if err := jobs.Add("orphan-blob-sweep", cfg.SweepSpec, sweeper.Job); err != nil {
		logger.Fatal("Failed to schedule sweep: %v", err)
	}
	jobs.RunNow("orphan-blob-sweep", sweeper.Job)
	jobs.Start()

	api := catalog.NewAPI(store, blobs, catalog.Options{
		PublicURL:         cfg.PublicURL,
		DownloadSecret:    cfg.DownloadSecret,
		DownloadURLExpiry: cfg.DownloadURLExpiry,
		MaxUploadBytes:    cfg.MaxUploadMB << 20,
		DeleteFails:       cfg.DeleteFails,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	api.Routes(mux,
		middleware.ServiceTokenMiddleware(cfg.TokenSecret),
		middleware.LoggingMiddleware,
		middleware.MetricsMiddleware,
		middleware.TracingMiddleware("product-catalog"),
		middleware.CORSMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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
	logger.Info("Swagger UI: %s/swagger/index.html", cfg.PublicURL)
	logger.Info("Database: %s", cfg.DBType)
	logger.Info("File storage: %s", cfg.StorageDir)
	if cfg.TokenSecret == "" {
		logger.Warn("CATALOG_TOKEN_SECRET is empty, API calls are not authenticated")
	}
	if cfg.DeleteFails {
		logger.Warn("CATALOG_DELETE_FAILS is set, product deletes will answer 500")
	}
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed to start: %v", err)
	}
}

// healthHandler 헬스체크 핸들러
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Server is healthy"}`))
}
