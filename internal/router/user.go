package router

import (
	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/dto"
)

// userRoutes is the admin user management surface.
func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	users.Use(r.authMw.RequireAuth(), r.authMw.RequireAdmin())
	{
		users.GET("", r.userHandler.List)
		users.POST("", r.body(func() interface{} { return &dto.CreateUserRequest{} }), r.userHandler.Create)
		users.GET("/:id", r.userHandler.Get)
		users.PATCH("/:id", r.body(func() interface{} { return &dto.UpdateUserRequest{} }), r.userHandler.Update)
		users.DELETE("/:id", r.userHandler.Delete)
		users.POST("/:id/toggle-status", r.userHandler.ToggleStatus)
	}
}
