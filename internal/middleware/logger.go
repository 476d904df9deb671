package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/logger"
)

// Logger middleware logs each request with its latency and status,
// enriched with the request id from context.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log := logger.FromContext(c.Request.Context())
		log.Info("request completed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}
