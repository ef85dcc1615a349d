package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapgram/photo-service/internal/application"
	"github.com/snapgram/photo-service/internal/config"
	"github.com/snapgram/photo-service/internal/handler"
	"github.com/snapgram/photo-service/internal/pkg/auth"
	"github.com/snapgram/photo-service/internal/pkg/blobstore"
	"github.com/snapgram/photo-service/internal/pkg/database"
	"github.com/snapgram/photo-service/internal/pkg/health"
	"github.com/snapgram/photo-service/internal/pkg/kafka"
	"github.com/snapgram/photo-service/internal/pkg/logger"
	"github.com/snapgram/photo-service/internal/pkg/middleware"
	"github.com/snapgram/photo-service/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "photo-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting photo-service",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.PhotoModel{}, &repository.LikeModel{}, &repository.CommentModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), cfg.MigrationsPath, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 24*time.Hour)

	// Initialize Kafka producer
	producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize blob store
	blobs, err := blobstore.New(context.Background(), cfg.BlobConfig, log)
	if err != nil {
		log.Fatal("failed to create blob store", zap.Error(err))
	}

	// Initialize repository and application service
	photoRepo := repository.NewGormPhotoRepository(db)
	photoService := application.NewPhotoService(
		photoRepo,
		blobs,
		producer,
		log,
		cfg.HideOwnershipFailures,
	)

	// Initialize HTTP handler
	photoHandler := handler.NewPhotoHandler(photoService, blobs)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "photo-service")
	healthHandler.RegisterRoutes(router)

	// Serve stored uploads directly when using the disk blob store
	if cfg.BlobConfig.Driver == "disk" || cfg.BlobConfig.Driver == "" {
		router.Static("/uploads", cfg.BlobConfig.Dir)
	}

	// Register routes
	photoHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down photo-service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("photo-service stopped")
}
