package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request with the request id fields
// already attached. Successful static-page and image reads are demoted
// to debug so the log stays focused on API traffic and failures.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		entry := GetRequestLogger(c).WithFields(map[string]interface{}{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    SanitizePath(path),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})

		quiet := c.Writer.Status() < 400 &&
			(strings.HasPrefix(path, "/images/") || !strings.HasPrefix(path, "/api/"))
		if quiet {
			entry.Debug("handled request")
			return
		}
		entry.Info("handled request")
	}
}
