package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/r2c-platform/admin-backend/internal/auth"
	"github.com/r2c-platform/admin-backend/internal/logger"
)

// RequestLogger logs one line per request at a level chosen by status class.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if rid := GetRequestID(c.Request.Context()); rid != "" {
			fields = append(fields, "request_id", rid)
		}
		if p, ok := auth.CurrentPrincipal(c); ok {
			fields = append(fields, "subject_id", p.SubjectID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.Last().Error())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
