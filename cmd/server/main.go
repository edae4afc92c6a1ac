// Package main runs the webinar landing HTTP server with WebSocket navigation and graceful shutdown.
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
	"go.uber.org/zap/zapcore"

	"github.com/aura-webinar/landing/config"
	"github.com/aura-webinar/landing/internal/auth"
	"github.com/aura-webinar/landing/internal/middleware"
	"github.com/aura-webinar/landing/internal/realtime"
	"github.com/aura-webinar/landing/internal/registrations"
	"github.com/aura-webinar/landing/internal/store"
	"github.com/aura-webinar/landing/internal/view"
	"github.com/aura-webinar/landing/internal/webinars"
	"github.com/aura-webinar/landing/pkg/database"
	"github.com/aura-webinar/landing/pkg/kv"
	"github.com/aura-webinar/landing/pkg/redis"
	"github.com/aura-webinar/landing/pkg/response"
	"github.com/aura-webinar/landing/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	var s3Client *storage.S3
	if cfg.Storage.Backend == config.BackendS3 || cfg.AWS.ImagesBucket != "" {
		s3Client, err = storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			StateBucket:     cfg.AWS.StateBucket,
			ImagesBucket:    cfg.AWS.ImagesBucket,
		}, logger)
		if err != nil {
			logger.Fatal("s3", zap.Error(err))
		}
	}

	provider, closeProvider, err := newProvider(ctx, cfg, s3Client, logger)
	if err != nil {
		logger.Fatal("storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer closeProvider()

	hub := realtime.NewHub(logger)
	webinarStore := store.New(provider,
		store.WithKey(cfg.Storage.Key),
		store.WithLogger(logger),
		store.WithNavigator(hub),
	)
	webinarStore.Load(ctx)

	gate, err := view.NewGate(cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		logger.Fatal("admin gate", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	var images webinars.ImageUploader
	if s3Client.ImagesEnabled() {
		images = s3Client
	}

	authHandler := auth.NewHandler(gate, jwtService, logger)
	webinarHandler := webinars.NewHandler(webinarStore, images, logger)
	registrationHandler := registrations.NewHandler(webinarStore, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Public
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/page", registrationHandler.Active)
	router.GET("/page/:id", registrationHandler.GetByID)
	router.POST("/webinars/:id/register", registrationHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	// Admin dashboard
	admin := router.Group("/admin")
	admin.Use(middleware.JWT(jwtService), middleware.RequireRole(auth.RoleAdmin))
	webinarHandler.Register(admin)

	// WebSocket, one per open page
	router.GET("/ws", realtime.ServeWs(hub, webinarStore, gate, logger))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Backend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newProvider opens the configured storage backend. The returned func releases its connections.
func newProvider(ctx context.Context, cfg *config.Config, s3Client *storage.S3, logger *zap.Logger) (kv.Provider, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("memory storage: configurations are lost on restart")
		return kv.NewMemory(), noop, nil
	case config.BackendFile:
		p, err := kv.NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	case config.BackendRedis:
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			return nil, noop, err
		}
		return kv.NewRedis(rdb.Client, cfg.Redis.KeyPrefix), func() { _ = rdb.Close() }, nil
	case config.BackendPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns), logger)
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("migrate: %w", err)
		}
		return kv.NewPostgres(pool), pool.Close, nil
	case config.BackendS3:
		if s3Client == nil {
			return nil, noop, fmt.Errorf("s3 client not configured")
		}
		return kv.NewS3(s3Client, s3Client.StateBucket(), cfg.AWS.StatePrefix), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
