package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/autofix-digital/template-base/pkg/logger"
	"github.com/autofix-digital/template-base/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() *ValidationMiddleware {
	validate := validator.New()
	// the DTOs carry gin binding tags, validate the same ones
	validate.SetTagName("binding")
	return &ValidationMiddleware{validate: validate}
}

func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		userAgent := c.GetHeader("User-Agent")
		contentType := c.GetHeader("Content-Type")

		logger.GetLogger().Debug("Middleware: Validation request processing",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", clientIP),
			zap.String("user_agent", userAgent),
			zap.String("content_type", contentType),
		)

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.GetLogger().Error("Middleware: Failed to read request body",
					zap.String("client_ip", clientIP),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
				c.JSON(http.StatusBadRequest, gin.H{
					"message": "failed to read request body",
				})
				c.Abort()
				return
			}
		}

		// Restore body so handlers can bind it again
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()

		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.GetLogger().Error("Middleware: JSON unmarshaling failed",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path),
				zap.Int("body_size", len(bodyBytes)),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "invalid JSON payload",
				"details": err.Error(),
			})
			c.Abort()
			return
		}

		logger.GetLogger().Debug("Middleware: JSON unmarshaling successful",
			zap.String("client_ip", clientIP),
			zap.String("path", c.Request.URL.Path),
			zap.Int("body_size", len(bodyBytes)),
		)

		if err := m.validate.Struct(request); err != nil {
			var validationErrors []string

			for _, e := range err.(validator.ValidationErrors) {
				logger.GetLogger().Debug("Middleware: Validation error occurred",
					zap.String("client_ip", clientIP),
					zap.String("field", e.Field()),
					zap.String("tag", e.Tag()),
					zap.String("param", e.Param()),
				)
				if fieldMessages := validation.CustomMessage(e.Field()); fieldMessages != nil {
					if msg, exists := fieldMessages[e.Tag()]; exists {
						validationErrors = append(validationErrors, msg)
					}
				} else {
					validationErrors = append(validationErrors, validation.DefaultMessage(e.Field(), e.Tag()))
				}
			}

			logger.GetLogger().Warn("Middleware: Request validation failed",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path),
				zap.Strings("validation_errors", validationErrors),
				zap.Int("error_count", len(validationErrors)),
			)

			c.JSON(http.StatusBadRequest, gin.H{
				"message": "validation failed",
				"details": validationErrors,
			})
			c.Abort()
			return
		}

		logger.GetLogger().Debug("Middleware: Request validation successful",
			zap.String("client_ip", clientIP),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}
