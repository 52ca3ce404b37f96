package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrometheusHandler wraps the metrics HTTP handler for use in a gin route.
func PrometheusHandler(metrics http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "metrics not initialized",
			})
			return
		}
		metrics.ServeHTTP(c.Writer, c.Request)
	}
}
