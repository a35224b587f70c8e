package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/chickenviken/backend/internal/application/catalog"
	identityapp "github.com/chickenviken/backend/internal/application/identity"
	orderingapp "github.com/chickenviken/backend/internal/application/ordering"
	"github.com/chickenviken/backend/internal/infrastructure/assets"
	"github.com/chickenviken/backend/internal/infrastructure/auth"
	"github.com/chickenviken/backend/internal/infrastructure/availability"
	"github.com/chickenviken/backend/internal/infrastructure/config"
	"github.com/chickenviken/backend/internal/infrastructure/event"
	"github.com/chickenviken/backend/internal/infrastructure/logger"
	"github.com/chickenviken/backend/internal/infrastructure/persistence"
	"github.com/chickenviken/backend/internal/interfaces/http/handler"
	"github.com/chickenviken/backend/internal/interfaces/http/middleware"
	"github.com/chickenviken/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

// redisPinger adapts the redis client to the availability probe
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.client.Ping(ctx).Err()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ChickenViken backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Connect both namespace databases
	namespaces, err := persistence.NewNamespaces(cfg)
	if err != nil {
		log.Fatal("Failed to connect to databases", zap.Error(err))
	}
	defer func() {
		if err := namespaces.Close(); err != nil {
			log.Error("Error closing databases", zap.Error(err))
		}
	}()
	log.Info("Databases connected")

	checker := availability.NewChecker(cfg.Availability.Attempts, cfg.Availability.Interval, log)
	if err := checker.Wait(context.Background(), "admin database", namespaces.Admin); err != nil {
		log.Fatal("Admin database is not available", zap.Error(err))
	}
	if err := checker.Wait(context.Background(), "user database", namespaces.User); err != nil {
		log.Fatal("User database is not available", zap.Error(err))
	}

	if err := namespaces.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Migrations applied")

	// Redis backs the token blacklist; the server does not start without it
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	if err := checker.Wait(context.Background(), "redis", redisPinger{client: redisClient}); err != nil {
		log.Fatal("Redis is not available", zap.Error(err))
	}

	blacklist := auth.NewRedisTokenBlacklist(redisClient)
	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories, split by namespace
	adminRepo := persistence.NewGormAdminRepository(namespaces.Admin.DB)
	productRepo := persistence.NewGormProductRepository(namespaces.Admin.DB)
	settingsRepo := persistence.NewGormSettingsRepository(namespaces.Admin.DB)
	customerRepo := persistence.NewGormCustomerRepository(namespaces.User.DB)
	orderRepo := persistence.NewGormOrderRepository(namespaces.User.DB)

	imageStore := assets.NewCloudinaryClient(cfg.Assets, log)

	// Application services
	orderService := orderingapp.NewOrderService(orderRepo, orderRepo, log)
	productService := catalogapp.NewProductService(productRepo, imageStore, log)
	settingsService := catalogapp.NewSettingsService(settingsRepo, log)
	adminService := identityapp.NewAdminService(adminRepo, jwtService, blacklist, log)
	customerService := identityapp.NewCustomerService(customerRepo, jwtService, blacklist, log)

	// Event bus with the order audit trail subscribed
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(orderingapp.NewOrderAuditHandler(log))
	orderService.SetEventPublisher(eventBus)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	systemHandler := handler.NewSystemHandler(version, map[string]availability.Pinger{
		"admin_db": namespaces.Admin,
		"user_db":  namespaces.User,
		"redis":    redisPinger{client: redisClient},
	})

	router.Setup(engine, router.Dependencies{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
		System:         systemHandler,
		Products:       handler.NewProductHandler(productService),
		Orders:         handler.NewOrderHandler(orderService),
		Customers:      handler.NewCustomerHandler(customerService),
		Admins:         handler.NewAdminHandler(adminService),
		Settings:       handler.NewSettingsHandler(settingsService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
