package main

import (
	"context"
	"time"

	"citypulse-service/internal/handler"
	mid "citypulse-service/internal/middleware"
	"citypulse-service/internal/ratelimit"
	"citypulse-service/internal/store"
	"citypulse-service/pkg/config"
	"citypulse-service/pkg/database"
	"citypulse-service/pkg/logger"
	"citypulse-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (.env is picked up there when present)
	appConfig, err := config.Load("citypulse")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting citypulse-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database. A failed connection is not fatal: every data
	// endpoint reports storage-unavailable per call instead.
	var st store.Store
	if err := database.InitDB(appConfig); err != nil {
		log.Warn("Database unavailable, continuing without storage", zap.Error(err))
	} else {
		st = store.NewGormStore(database.GetDB())
		log.Info("Database connection established")

		// Ensure the default tenant's Global room exists
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		room, err := store.EnsureGlobalRoom(ctx, st, handler.DefaultTenant)
		cancel()
		if err != nil {
			log.Error("Failed to ensure Global room", zap.Error(err))
		} else {
			log.Info("Global room ready", zap.String("room_id", room.ID))
		}
	}

	// Initialize the rate limiter when Redis is configured
	var limiter *ratelimit.FixedWindowLimiter
	if appConfig.Redis.Addr != "" {
		limiter, err = ratelimit.NewFixedWindowLimiter(
			appConfig.Redis.Addr,
			appConfig.Redis.Password,
			"citypulse:ratelimit",
			appConfig.Chat.MessageLimitPerMinute,
			time.Minute,
		)
		if err != nil {
			log.Warn("Rate limiter disabled", zap.Error(err))
			limiter = nil
		} else {
			log.Info("Rate limiter initialized", zap.String("redis_addr", appConfig.Redis.Addr))
		}
	}

	h := handler.New(st, handler.Options{
		Limiter:               limiter,
		MessageLimitPerMinute: appConfig.Chat.MessageLimitPerMinute,
		AlertCooldownSeconds:  appConfig.Chat.AlertCooldownSeconds,
		StoreTimeout:          appConfig.Chat.StoreTimeout,
	})

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes
	h.Register(e)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
