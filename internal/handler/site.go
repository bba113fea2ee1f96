package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/dto"
	"github.com/autofix-digital/template-base/internal/model"
	"github.com/autofix-digital/template-base/internal/service"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// SiteHandler serves the public marketing site plus the admin content
// endpoints.
type SiteHandler struct {
	siteService *service.SiteService
}

func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role.(model.Role) == model.RoleAdmin
}

// ListPosts lists published posts. Admins may pass published=false to
// include drafts.
func (h *SiteHandler) ListPosts(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListPosts")

	params := constants.ParsePaginationParams(c)

	published := true
	filter := dto.BlogPostFilter{
		Category:  c.Query(constants.QueryParamCategory),
		Search:    c.Query(constants.QueryParamSearch),
		Published: &published,
	}
	if isAdmin(c) && c.Query("published") == "false" {
		filter.Published = nil
	}

	posts, total, err := h.siteService.ListPosts(ctx, params.Limit, params.Offset, filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	pageTotal := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, posts))
}

func (h *SiteHandler) GetPost(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetPost")

	post, err := h.siteService.GetPostBySlug(ctx, c.Param("slug"), isAdmin(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *SiteHandler) CreatePost(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreatePost")

	var req dto.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	post, err := h.siteService.CreatePost(ctx, currentUserID(c), &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Blog post creation failed").
			String("slug", req.Slug).
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *SiteHandler) UpdatePost(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdatePost")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	post, err := h.siteService.UpdatePost(ctx, id, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *SiteHandler) DeletePost(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeletePost")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.siteService.DeletePost(ctx, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Blog post deleted"))
}

// SubmitContact accepts a public contact form submission
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SubmitContact")

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	msg, err := h.siteService.SubmitContact(ctx, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *SiteHandler) ListContactMessages(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListContactMessages")

	params := constants.ParsePaginationParams(c)

	messages, total, err := h.siteService.ListContactMessages(ctx, params.Limit, params.Offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	pageTotal := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, messages))
}

func (h *SiteHandler) MarkContactRead(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "MarkContactRead")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.siteService.MarkContactRead(ctx, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Message marked as read"))
}
