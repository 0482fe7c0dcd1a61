package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealquest-api/internal/metrics"
)

// RecordMetrics records the count and latency of every request, labelled by
// the matched route template so that path parameters do not explode the
// label space.
func RecordMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
