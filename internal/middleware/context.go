package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// ContextMiddleware seeds the request context with request id, client
// info and module/function markers used by the context logger.
func ContextMiddleware(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		function := c.Request.URL.Path
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, module, function)

		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", ctxutil.GetRequestID(ctx))

		c.Next()

		logger.InfoWithContext(ctx, "Request completed").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}

// RequestTimeoutMiddleware bounds each request to the configured timeout.
func RequestTimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := ctxutil.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		select {
		case <-ctx.Done():
			logger.WarnWithContext(ctx, "Request timeout before processing").
				Duration(timeout).
				Log()
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error":   "Request timeout",
				"timeout": timeout.String(),
			})
			c.Abort()
			return
		default:
			c.Next()
		}
	}
}
