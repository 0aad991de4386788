package routes

import (
	"NutriCare/cache"
	"NutriCare/config"
	"NutriCare/controllers"
	"NutriCare/handlers"
	"NutriCare/middlewares"
	"NutriCare/repositories"
	"NutriCare/services"
	"NutriCare/storage"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, cfg *config.AppConfig, db *gorm.DB, store *storage.Store) http.Handler {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Stored attachments are served directly from the upload tree.
	router.Static("/uploads", store.BaseDir())

	patientRepo := repositories.NewPatientRepository(db, cache)
	ipScreeningRepo := repositories.NewIPScreeningRepository(db, cache)
	opScreeningRepo := repositories.NewOPScreeningRepository(db, cache)
	followUpRepo := repositories.NewFollowUpRepository(db, cache)
	userRepo := repositories.NewUserRepository(db)

	patientHandler := handlers.NewPatientHandler(services.NewPatientService(patientRepo))
	ipScreeningHandler := handlers.NewIPScreeningHandler(services.NewIPScreeningService(ipScreeningRepo, store))
	opScreeningHandler := handlers.NewOPScreeningHandler(services.NewOPScreeningService(opScreeningRepo, store))
	followUpHandler := handlers.NewFollowUpHandler(services.NewFollowUpService(followUpRepo, store))
	authHandler := handlers.NewAuthHandler(services.NewAuthService(userRepo))

	controllers.SetupRecordRoutes(router, patientHandler, ipScreeningHandler, opScreeningHandler, followUpHandler)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
