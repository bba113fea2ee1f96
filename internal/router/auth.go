package router

import (
	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/dto"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", r.body(func() interface{} { return &dto.RegisterRequest{} }), r.authHandler.Register)
		auth.POST("/login", r.body(func() interface{} { return &dto.LoginRequest{} }), r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.Refresh)
		auth.POST("/logout", r.authHandler.Logout)
		auth.POST("/forgot-password", r.body(func() interface{} { return &dto.ForgotPasswordRequest{} }), r.authHandler.ForgotPassword)
		auth.POST("/reset-password", r.body(func() interface{} { return &dto.ResetPasswordRequest{} }), r.authHandler.ResetPassword)

		// Protected routes (JWT authentication required)
		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.GET("/me", r.authHandler.Me)
			protected.PATCH("/me", r.body(func() interface{} { return &dto.UpdateProfileRequest{} }), r.authHandler.UpdateProfile)
			protected.POST("/change-password", r.body(func() interface{} { return &dto.ChangePasswordRequest{} }), r.authHandler.ChangePassword)
		}
	}
}
