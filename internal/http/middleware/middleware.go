package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimer records request duration and exposes it as a response header.
func RequestTimer() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		c.Header("X-Response-Time-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
	}
}
