package router

import (
	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/dto"
)

// siteRoutes serves the public marketing site and its admin surface.
func (r *Router) siteRoutes(version *gin.RouterGroup) {
	site := version.Group("/site")
	{
		// Public routes
		site.GET("/posts", r.authMw.OptionalAuth(), r.siteHandler.ListPosts)
		site.GET("/posts/:slug", r.authMw.OptionalAuth(), r.siteHandler.GetPost)
		site.POST("/contact", r.body(func() interface{} { return &dto.ContactRequest{} }), r.siteHandler.SubmitContact)

		// Admin content management
		admin := site.Group("")
		admin.Use(r.authMw.RequireAuth(), r.authMw.RequireAdmin())
		{
			admin.POST("/posts", r.body(func() interface{} { return &dto.CreateBlogPostRequest{} }), r.siteHandler.CreatePost)
			admin.PATCH("/posts/:id", r.body(func() interface{} { return &dto.UpdateBlogPostRequest{} }), r.siteHandler.UpdatePost)
			admin.DELETE("/posts/:id", r.siteHandler.DeletePost)
			admin.GET("/messages", r.siteHandler.ListContactMessages)
			admin.POST("/messages/:id/read", r.siteHandler.MarkContactRead)
		}
	}
}
