package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/config"
	"github.com/autofix-digital/template-base/internal/handler"
	"github.com/autofix-digital/template-base/internal/middleware"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	configHandler *handler.ConfigurationHandler
	siteHandler   *handler.SiteHandler
	healthHandler *handler.HealthHandler

	authMw  *middleware.AuthMiddleware
	validMw *middleware.ValidationMiddleware
	Config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	configuration *handler.ConfigurationHandler,
	site *handler.SiteHandler,
	health *handler.HealthHandler,

	authMw *middleware.AuthMiddleware,
	validMw *middleware.ValidationMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		configHandler: configuration,
		siteHandler:   site,
		healthHandler: health,

		authMw:  authMw,
		validMw: validMw,
		Config:  cfg,
	}
}

// body validates the request payload against the DTO the factory
// produces before the handler binds it.
func (r *Router) body(factory func() interface{}) gin.HandlerFunc {
	return r.validMw.ValidateRequestBody(factory)
}

func (r *Router) SetupRoutes() *gin.Engine {
	// Create Gin router
	router := gin.New()

	// Use custom logging and recovery middleware
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS())
	router.Use(middleware.ContextMiddleware("api"))
	if r.Config.App.Timeout > 0 {
		router.Use(middleware.RequestTimeoutMiddleware(r.Config.App.Timeout))
	}

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/full", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.configRoutes(v1)
			r.siteRoutes(v1)
			r.adminRoutes(v1)
		}
	}

	return router
}

// adminRoutes holds maintenance operations outside of a single resource
func (r *Router) adminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(r.authMw.RequireAuth(), r.authMw.RequireAdmin())
	{
		admin.POST("/cleanup-tokens", r.authHandler.CleanupTokens)
	}
}
