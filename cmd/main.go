package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mufattish/backend/internal/db"
	"github.com/mufattish/backend/internal/handlers"
	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/middleware"
	"github.com/mufattish/backend/internal/repos"
	"github.com/mufattish/backend/internal/server"
	"github.com/mufattish/backend/internal/services"
	"github.com/mufattish/backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	indicatorCacheTTL := utils.GetEnvAsInt("INDICATOR_CACHE_TTL", 1800, log)
	allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
	port := utils.GetEnv("PORT", "8080", log)
	if utils.GetEnvAsBool("GIN_RELEASE", false, log) {
		gin.SetMode(gin.ReleaseMode)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (optional indicator cache)
	cache, err := services.NewIndicatorCache(log, time.Duration(indicatorCacheTTL)*time.Second)
	if err != nil {
		log.Warn("Redis init failed, running without indicator cache", "error", err)
		cache = nil
	}
	if cache == nil {
		log.Info("Indicator cache disabled")
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	classRepo := repos.NewAcqClassRecordRepo(thePG, log)
	globalRepo := repos.NewAcqGlobalRecordRepo(thePG, log)
	schoolRepo := repos.NewSchoolProfileRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	acquisitionsService := services.NewAcquisitionsService(thePG, log, classRepo, globalRepo, schoolRepo, cache)
	schoolService := services.NewSchoolService(thePG, log, schoolRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService)
	acquisitionsHandler := handlers.NewAcquisitionsHandler(log, acquisitionsService)
	schoolHandler := handlers.NewSchoolHandler(log, schoolService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		AcquisitionsHandler: acquisitionsHandler,
		SchoolHandler:       schoolHandler,
		AllowOrigins:        strings.Split(allowOrigins, ","),
	})

	log.Info("Starting HTTP server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
