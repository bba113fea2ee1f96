package router

import (
	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/dto"
)

// configRoutes exposes the typed settings store. Reads by key are open
// to any authenticated user; everything else is admin only.
func (r *Router) configRoutes(version *gin.RouterGroup) {
	configs := version.Group("/config")
	configs.Use(r.authMw.RequireAuth())
	{
		configs.GET("/key/:key", r.configHandler.GetByKey)

		admin := configs.Group("")
		admin.Use(r.authMw.RequireAdmin())
		{
			admin.GET("", r.configHandler.List)
			admin.POST("", r.body(func() interface{} { return &dto.CreateConfigurationRequest{} }), r.configHandler.Create)
			admin.GET("/:id", r.configHandler.Get)
			admin.PATCH("/:id", r.body(func() interface{} { return &dto.UpdateConfigurationRequest{} }), r.configHandler.Update)
			admin.DELETE("/:id", r.configHandler.Delete)
		}
	}
}
