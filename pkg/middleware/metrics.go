package middleware

import (
	"strconv"
	"time"

	"loyaltypro/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request duration per route. The route template
// (not the raw path) is used as the label so IDs do not blow up cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
