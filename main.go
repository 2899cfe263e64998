package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketing-template/catalog"
	"marketing-template/config"
	"marketing-template/logging"
	"marketing-template/middleware"
	"marketing-template/routes"
	"marketing-template/session"
	"marketing-template/storage"
	"marketing-template/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration failed: ", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		log.Fatal("Logger setup failed: ", err)
	}
	defer func() { _ = logger.Sync() }()

	sessions, err := session.NewStore(cfg.SessionSecret, !cfg.Debug)
	if err != nil {
		logger.Fatal("session store", zap.Error(err))
	}

	templates, err := storage.NewLocalTemplateStore(cfg.TemplateDir)
	if err != nil {
		logger.Fatal("template storage", zap.Error(err))
	}

	views, err := web.Templates()
	if err != nil {
		logger.Fatal("parse views", zap.Error(err))
	}

	var uploadLimiter *middleware.RateLimiter
	if cfg.UploadRateLimit > 0 {
		uploadLimiter = middleware.NewRateLimiter(cfg.UploadRateLimit, time.Minute)
		defer uploadLimiter.Stop()
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.MaxMultipartMemory = cfg.MaxMultipartMemory
	r.SetHTMLTemplate(views)

	routes.SetupRoutes(r, catalog.NewLoader(cfg.CatalogPath), sessions, templates, uploadLimiter, cfg.StaticDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Run server in a goroutine
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.Bool("debug", cfg.Debug),
			zap.String("catalog", cfg.CatalogPath),
			zap.String("template_dir", cfg.TemplateDir),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited gracefully")
}
