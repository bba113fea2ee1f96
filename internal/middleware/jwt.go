package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/model"
	"github.com/autofix-digital/template-base/internal/service"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// AuthMiddleware gates routes behind a valid access token. The token is
// read from the auth cookie first, then the Authorization header.
type AuthMiddleware struct {
	tokens *service.TokenService
}

func NewAuthMiddleware(tokens *service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth validates the access token and sets the caller's identity
// on both the gin context and the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			logger.GetLogger().Warn("Missing credentials",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			c.JSON(http.StatusUnauthorized, constants.BuildDomainErrorResponse("UNAUTHORIZED", "authentication required"))
			c.Abort()
			return
		}

		claims, err := m.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			c.JSON(http.StatusUnauthorized, constants.BuildDomainErrorResponse("INVALID_TOKEN", "invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = ctxutil.WithValue(ctx, ctxutil.UserEmailKey, claims.Email)
		ctx = ctxutil.WithUserRole(ctx, string(claims.Role))
		c.Request = c.Request.WithContext(ctx)

		logger.GetLogger().Debug("User authenticated successfully",
			zap.Uint("user_id", claims.UserID),
			zap.String("email", claims.Email),
			zap.String("path", c.Request.URL.Path))

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role.(model.Role) != model.RoleAdmin {
			userID, _ := c.Get("user_id")
			logger.GetLogger().Warn("Admin access denied",
				zap.Any("user_id", userID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			c.JSON(http.StatusForbidden, constants.BuildDomainErrorResponse("FORBIDDEN", "admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present but
// never rejects the request.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := m.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
