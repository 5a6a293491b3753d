package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"saccoledger/internal/pkg/logger"
)

const TraceIDHeader = "X-Trace-Id"

// TraceID propagates the caller's trace id, minting one when absent, so
// every log line of a request can be correlated.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}
