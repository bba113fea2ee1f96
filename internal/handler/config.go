package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/dto"
	"github.com/autofix-digital/template-base/internal/service"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
)

// ConfigurationHandler exposes the typed settings store to admins.
type ConfigurationHandler struct {
	configService *service.ConfigurationService
}

func NewConfigurationHandler(configService *service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: configService}
}

func (h *ConfigurationHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListConfigurations")

	configs, err := h.configService.List(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": configs})
}

func (h *ConfigurationHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetConfiguration")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cfg, err := h.configService.GetByID(ctx, id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// GetByKey serves a single configuration by key, cache-first
func (h *ConfigurationHandler) GetByKey(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetConfigurationByKey")

	cfg, err := h.configService.GetByKey(ctx, c.Param("key"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigurationHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateConfiguration")

	var req dto.CreateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	cfg, err := h.configService.Create(ctx, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cfg)
}

func (h *ConfigurationHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateConfiguration")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	cfg, err := h.configService.Update(ctx, id, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigurationHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteConfiguration")

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.configService.Delete(ctx, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Configuration deleted"))
}
