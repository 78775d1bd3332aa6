package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.InfoContext(c.Request.Context(), "Request completed",
			"requestID", c.GetString("request_id"),
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latencyMs", time.Since(start).Milliseconds(),
			"clientIP", c.ClientIP())
	}
}
