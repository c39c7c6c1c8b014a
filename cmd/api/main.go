package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"easi-website/config"
	_ "easi-website/docs" // Important for Swagger
	"easi-website/internal/delivery/http/middleware"
	v1 "easi-website/internal/delivery/http/v1"
	"easi-website/internal/form"
	"easi-website/internal/repository/backendapi"
	"easi-website/internal/site"
	"easi-website/internal/usecase"
	"easi-website/pkg/audit"
	"easi-website/pkg/logger"
	redisclient "easi-website/pkg/redis"
	"easi-website/web"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           EASI Website API
// @version         1.0
// @description     Public contact, newsletter and resource endpoints of the East African Statistics Institute website.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.GinMode)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting EASI website", "port", cfg.Port, "backend", cfg.BackendURL)

	environment := "development"
	if cfg.IsProduction() {
		environment = "production"
	}
	auditLog := audit.New("easi-website", environment)
	defer func() { _ = auditLog.Sync() }()

	// 3. Setup Redis (optional)
	var rdb *goredis.Client
	rdb, err = redisclient.New(context.Background(), redisclient.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		if !errors.Is(err, redisclient.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory stores", "error", err)
		}
	} else {
		defer rdb.Close()
		logger.Log.Info("Connected to Redis")
	}

	var guard form.InflightGuard = form.NewMemoryGuard(cfg.InflightTTL)
	if rdb != nil {
		guard = form.NewRedisGuard(rdb, cfg.InflightTTL)
	}

	// 4. Setup Backend Gateway and Content
	backend := backendapi.NewClient(cfg.BackendURL, cfg.BackendTimeout)

	content, err := site.Load(cfg.ContentPath)
	if err != nil {
		logger.Log.Error("Failed to load site content", "path", cfg.ContentPath, "error", err)
		os.Exit(1)
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(backend, guard, auditLog)
	newsletterUC := usecase.NewNewsletterUsecase(backend, guard, auditLog)
	resourceUC := usecase.NewResourceUsecase(backend)
	healthUC := usecase.NewHealthUsecase(rdb)

	rateLimiter := middleware.NewRateLimiter(rdb, auditLog, time.Minute)
	defer rateLimiter.Close()

	// 6. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC:    contactUC,
		NewsletterUC: newsletterUC,
		ResourceUC:   resourceUC,
		HealthUC:     healthUC,
		RateLimiter:  rateLimiter,
		Content:      content,
		Templates:    web.Templates,
		Static:       web.Static,
		Config:       cfg,
	})
	if err != nil {
		logger.Log.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
