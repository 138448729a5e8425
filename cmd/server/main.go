package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"taxigo/internal/config"
	"taxigo/internal/handlers"
	"taxigo/internal/middleware"
	"taxigo/internal/services"
	"taxigo/internal/store"
	"taxigo/internal/utils"
	"taxigo/pkg/logger"
	"taxigo/pkg/simulation"
	"taxigo/pkg/websocket"
	"taxigo/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Colors: !config.IsProduction(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	stateStore, err := newStore(ctx, cfg.Store)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize state store")
	}
	defer stateStore.Close(ctx)

	appLogger.WithField("backend", cfg.Store.Backend).Info("State store ready")

	sim := simulation.NewRandomSimulator()

	// Initialize services
	authService := services.NewAuthService(stateStore, cfg.Security.JWTSecret, cfg.Security.JWTTokenTTL, cfg.Security.BcryptCost, appLogger)
	ledgerService := services.NewLedgerService(stateStore, appLogger)
	driverService := services.NewDriverService(stateStore, appLogger)
	rideService := services.NewRideService(stateStore, sim, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(ledgerService)
	driverHandler := handlers.NewDriverHandler(driverService)
	rideHandler := handlers.NewRideHandler(rideService)

	wsHandler := websocket.NewHandler(
		func(token string) (string, error) {
			claims, err := utils.ValidateToken(token, cfg.Security.JWTSecret)
			if err != nil {
				return "", err
			}
			return claims.UserID, nil
		},
		func(ctx context.Context, rideID string) (map[string]interface{}, error) {
			result, err := rideService.DriverLocation(ctx, rideID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"driverLocation": result.DriverLocation,
				"etaMinutes":     result.EtaMinutes,
			}, nil
		},
		cfg.WebSocket.TrackInterval,
		appLogger,
	)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	root := router.Group("/")
	{
		routes.SetupAuthRoutes(root, authHandler)
		routes.SetupWalletRoutes(root, walletHandler, cfg.Security.JWTSecret)
		routes.SetupDriverRoutes(root, driverHandler)
		routes.SetupRideRoutes(root, rideHandler, cfg.Security.JWTSecret)
		routes.SetupTrackingRoutes(root, wsHandler)
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Taxi backend running!")
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Taxi backend running on port %d", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.WithError(err).Fatal("Server stopped")
	}
}

func newStore(ctx context.Context, cfg *config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "redis":
		return store.NewRedisStore(ctx, &store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		})
	case "mongo":
		return store.NewMongoStore(ctx, &store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return store.NewFileStore(cfg.FilePath)
	}
}
