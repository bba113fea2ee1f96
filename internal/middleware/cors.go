package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/pkg/logger"
	"go.uber.org/zap"
)

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			logger.GetLogger().Debug("CORS preflight request handled",
				zap.String("client_ip", c.ClientIP()),
				zap.String("origin", origin),
			)
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
