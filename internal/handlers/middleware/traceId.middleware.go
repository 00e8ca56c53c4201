package middleware

import (
	"rutinas/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID reuses a well-formed incoming X-Trace-ID or generates one, echoes
// it on the response and stores it in the request's user context.
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			if traceID != "" {
				m.log.Debug("Discarding malformed trace id", "traceID", traceID)
			}
			traceID = uuid.NewString()
		}

		c.Set(TraceIDHeader, traceID)
		c.SetUserContext(logger.ContextWithTraceID(c.UserContext(), traceID))

		return c.Next()
	}
}
