package middleware

import (
	"comments/pkg/events"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	TraceIDHeader       = "X-Trace-ID"
	CorrelationIDHeader = "X-Correlation-ID"
)

// NewRequestContextMiddleware carries the caller's trace and correlation ids
// into the user context, generating them when absent, and echoes the trace
// id back on the response.
func NewRequestContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := strings.TrimSpace(c.Get(TraceIDHeader))
		correlationID := strings.TrimSpace(c.Get(CorrelationIDHeader))

		if traceID == "" {
			traceID = events.GenerateTraceID()
		}
		if correlationID == "" {
			correlationID = events.GenerateCorrelationID()
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		userCtx = events.ContextWithHeaders(userCtx, events.Headers{
			TraceID:       traceID,
			CorrelationID: correlationID,
		})

		c.SetUserContext(userCtx)
		c.Set(TraceIDHeader, traceID)

		return c.Next()
	}
}
