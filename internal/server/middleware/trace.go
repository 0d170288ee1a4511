package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/gavelhq/gavel/internal/tracing"
)

// Trace attaches a trace id to every request context, reusing the inbound
// header when the gateway already assigned one.
func Trace(cfg tracing.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(cfg.TraceHeader)
		if traceID == "" {
			traceID = tracing.GenerateTraceID()
		}

		ctx := tracing.WithTraceID(c.Request.Context(), traceID)

		if requestID := c.GetHeader(cfg.RequestHeader); requestID != "" {
			ctx = tracing.WithRequestID(ctx, requestID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(cfg.TraceHeader, traceID)

		c.Next()
	}
}
