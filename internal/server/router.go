package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mufattish/backend/internal/handlers"
	"github.com/mufattish/backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	AcquisitionsHandler *handlers.AcquisitionsHandler
	SchoolHandler       *handlers.SchoolHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	acq := api.Group("/acquisitions")
	acq.GET("/selectors", cfg.AcquisitionsHandler.ListSelectors)

	acq.POST("/classes", cfg.AcquisitionsHandler.UploadClassRecord)
	acq.GET("/classes", cfg.AcquisitionsHandler.ListClassRecords)
	acq.GET("/classes/:id", cfg.AcquisitionsHandler.GetClassRecord)
	acq.GET("/classes/:id/indicators", cfg.AcquisitionsHandler.ClassIndicators)
	acq.DELETE("/classes/:id", cfg.AcquisitionsHandler.DeleteClassRecord)

	acq.POST("/global", cfg.AcquisitionsHandler.UploadGlobalRecord)
	acq.GET("/global", cfg.AcquisitionsHandler.ListGlobalRecords)
	acq.GET("/global/:id", cfg.AcquisitionsHandler.GetGlobalRecord)
	acq.GET("/global/:id/indicators", cfg.AcquisitionsHandler.GlobalIndicators)
	acq.DELETE("/global/:id", cfg.AcquisitionsHandler.DeleteGlobalRecord)

	api.GET("/schools/profile", cfg.SchoolHandler.GetProfile)
	api.PUT("/schools/profile", cfg.SchoolHandler.UpdateProfile)

	return router
}
