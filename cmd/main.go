package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	configs "github.com/autofix-digital/template-base/config"
	"github.com/autofix-digital/template-base/internal/handler"
	"github.com/autofix-digital/template-base/internal/middleware"
	"github.com/autofix-digital/template-base/internal/repository"
	"github.com/autofix-digital/template-base/internal/router"
	"github.com/autofix-digital/template-base/internal/service"
	"github.com/autofix-digital/template-base/pkg/database"
	"github.com/autofix-digital/template-base/pkg/logger"
	"github.com/autofix-digital/template-base/pkg/mailer"
	"github.com/autofix-digital/template-base/pkg/redis"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", "1.0.0"),
	)

	db, err := database.NewPostgresDB(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run auto migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Seed initial data
	if err := database.Seed(db); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
		// Don't fail - seed data may already exist
	} else {
		logger.GetLogger().Info("Database seeded successfully")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	configRepo := repository.NewConfigurationRepository(db)
	postRepo := repository.NewBlogPostRepository(db)
	contactRepo := repository.NewContactMessageRepository(db)

	// Redis is optional; when disabled the config cache is a no-op
	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.NewClient(config)
		if err != nil {
			logger.GetLogger().Warn("Redis unavailable, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Outbound email transport
	mail, err := mailer.NewFromConfig(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize mailer", zap.Error(err))
	}

	// Services
	tokenService := service.NewTokenService(config)
	authService := service.NewAuthService(config, userRepo, refreshRepo, resetRepo, tokenService, mail)
	userService := service.NewUserService(userRepo, refreshRepo, tokenService)
	configCache := service.NewConfigCache(redisClient, config.Redis.Enabled)
	configService := service.NewConfigurationService(configRepo, configCache)
	siteService := service.NewSiteService(postRepo, contactRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(config, authService)
	userHandler := handler.NewUserHandler(userService)
	configHandler := handler.NewConfigurationHandler(configService)
	siteHandler := handler.NewSiteHandler(siteService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	validationMiddleware := middleware.NewValidationMiddleware()

	r := router.NewRouter(
		authHandler,
		userHandler,
		configHandler,
		siteHandler,
		healthHandler,

		authMiddleware,
		validationMiddleware,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
