package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"mealbridge/database"
	"mealbridge/internal/config"
	"mealbridge/internal/geocode"
	"mealbridge/internal/httpapi/handler"
	"mealbridge/internal/httpapi/middleware"
	"mealbridge/internal/httpapi/repository"
	"mealbridge/internal/httpapi/service"
	"mealbridge/internal/intake"
	"mealbridge/internal/storage"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Connect to the database and run migrations
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis backs the geocode cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// Repositories and services
	repos := repository.NewRepos(db)
	txManager := repository.NewTxManager(db)

	donationService := service.NewDonationService(txManager, repos, logger)
	reservationService := service.NewReservationService(txManager, repos, logger)
	ratingService := service.NewRatingService(txManager, repos, logger)
	messageService := service.NewMessageService(repos)
	notificationService := service.NewNotificationService(repos)
	profileService := service.NewProfileService(repos)

	storageClient := storage.NewClient(cfg.StorageURL, cfg.StorageAPIKey)
	moderationService := service.NewModerationService(txManager, repos, storageClient, logger)

	geocodeService := geocode.NewService(
		geocode.NewClient(cfg.NominatimUserAgent, cfg.GeocodeTimeout, logger),
		geocode.NewRedisCache(redisClient),
		cfg.GeocodeCacheTTL,
		logger,
	)
	intakeClient := intake.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Handlers
	donationHandler := handler.NewDonationHandler(donationService, reservationService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	messageHandler := handler.NewMessageHandler(messageService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	profileHandler := handler.NewProfileHandler(profileService)
	moderationHandler := handler.NewModerationHandler(moderationService)
	geocodeHandler := handler.NewGeocodeHandler(geocodeService)
	intakeHandler := handler.NewIntakeHandler(intakeClient)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public discovery surface. Auth is optional here: anonymous browsing is
	// open, but an identified owner or moderator can reach hidden listings.
	public := api.Group("", middleware.OptionalAuth(cfg.JWTSecret))
	donationHandler.RegisterPublicRoutes(public)
	ratingHandler.RegisterPublicRoutes(public)
	profileHandler.RegisterPublicRoutes(public)

	// Authenticated surface; writes additionally require an unbanned account
	authed := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireNotBanned(repos.Profiles))
	donationHandler.RegisterRoutes(authed)
	reservationHandler.RegisterRoutes(authed)
	ratingHandler.RegisterRoutes(authed)
	messageHandler.RegisterRoutes(authed)
	notificationHandler.RegisterRoutes(authed)
	profileHandler.RegisterRoutes(authed)
	moderationHandler.RegisterRoutes(authed)

	// Upstream proxies are rate limited so one client cannot burn the quota
	proxied := authed.Group("", middleware.RateLimit(1, 5))
	geocodeHandler.RegisterRoutes(proxied)
	intakeHandler.RegisterRoutes(proxied)

	// Moderation surface
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireModerator(repos.Profiles))
	moderationHandler.RegisterAdminRoutes(admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_api_server", "addr", addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutting_down", "signal", sig.String())
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("redis_close_failed", "error", err)
	}
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
