package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderTraceID   = "X-Trace-Id"
)

type requestIDKey struct{}

// RequestID ensures every request carries a stable request ID. An incoming
// X-Request-Id is kept, otherwise a UUID is generated. The ID is stored in the
// gin context, the request context and echoed in the response. When a span
// is active its trace ID is echoed as X-Trace-Id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set("request_id", rid)
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, rid)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set(HeaderRequestID, rid)
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Writer.Header().Set(HeaderTraceID, sc.TraceID().String())
		}

		c.Next()
	}
}

// GetRequestID extracts the request ID from a standard context.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
