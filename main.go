package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Keerthims13/ecommerce-platform/cart"
	"github.com/Keerthims13/ecommerce-platform/config"
	"github.com/Keerthims13/ecommerce-platform/events"
	"github.com/Keerthims13/ecommerce-platform/middleware"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/Keerthims13/ecommerce-platform/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(config.LoggerConfig{Level: cfg.LogLevel, Env: cfg.Env})
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("✅ Starting application...", zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init DB
	db := initDatabase(cfg.Postgres, logger)

	// Auto-migrate all tables
	if err := db.AutoMigrate(models.All()...); err != nil {
		logger.Fatal("❌ AutoMigrate failed", zap.Error(err))
	}

	// Order events: dashboards always, RabbitMQ when configured
	hub := events.NewHub(logger)
	publisher := events.Fanout{hub}
	if cfg.RabbitMQ.URL != "" {
		pool, err := events.NewChannelPool(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, cfg.RabbitMQ.ChannelPoolSize)
		if err != nil {
			logger.Fatal("❌ RabbitMQ connection failed", zap.Error(err))
		}
		defer pool.Close()
		publisher = append(publisher, events.NewAMQPPublisher(pool, logger))
		logger.Info("📨 Publishing order events to RabbitMQ", zap.String("queue", cfg.RabbitMQ.Queue))
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Gin setup
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// CORS settings
	r.Use(cors.New(corsConfig(cfg.HTTP.CORSOrigins)))

	// Cart sessions, swept when idle
	carts := cart.NewRegistry(cart.WithIdleTTL(cfg.Cart.IdleTTL))
	go carts.Run(ctx, cfg.Cart.SweepInterval, logger)

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:        db,
		Logger:    logger,
		Carts:     carts,
		Hub:       hub,
		Publisher: publisher,
		APIKey:    cfg.Auth.AdminAPIKey,
		JWTSecret: cfg.Auth.JWTSecret,
	})

	if cfg.Auth.AdminAPIKey == "" {
		logger.Warn("⚠️ ADMIN_API_KEY is empty, admin routes are unprotected")
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Warn("⚠️ JWT_SECRET is empty, checkout and /api/user routes will reject every token")
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: r,
	}

	go func() {
		logger.Info("🚀 Server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Graceful shutdown failed", zap.Error(err))
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Postgres, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("❌ DB connection failed", zap.Error(err))
	}
	return db
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	// gin-contrib/cors rejects "*" together with credentials
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
