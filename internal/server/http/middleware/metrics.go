package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records per-route request metrics.
type RequestObserver interface {
	ObserveRequest(handler string, status int, elapsed time.Duration)
}

// Metrics reports every request to observer, keyed by route template.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(route, c.Writer.Status(), time.Since(start))
	}
}
