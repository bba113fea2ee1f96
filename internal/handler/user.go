package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/dto"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/service"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// UserHandler is the admin user management surface.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildDomainErrorResponse(
			apperrors.ErrInvalidInput.Code, "invalid id parameter"))
		return 0, false
	}
	return uint(id), true
}

// List returns a paginated, searchable user listing
func (h *UserHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListUsers")

	params := constants.ParsePaginationParams(c)
	search := c.Query(constants.QueryParamSearch)

	users, total, err := h.userService.List(ctx, params.Limit, params.Offset, search)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	pageTotal := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, users))
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetUser")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateUser")

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.userService.Create(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "User creation failed").
			String("email", req.Email).
			Err(err).
			Log()
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateUser")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.userService.Update(ctx, id, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteUser")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(ctx, id, currentUserID(c)); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("User deleted"))
}

// ToggleStatus flips is_active on an account
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ToggleUserStatus")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.ToggleActive(ctx, id, currentUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
