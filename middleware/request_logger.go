package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookwise/utils"
)

// RequestLoggerMiddleware attaches a request-scoped logger to the Gin
// context under the "logger" key, with the route and caller already
// bound, so handlers log with request context for free.
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger().With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("clientIP", getClientIP(c)),
		)
		c.Set("logger", logger)
		c.Next()
	}
}
