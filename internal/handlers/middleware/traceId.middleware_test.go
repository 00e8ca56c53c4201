package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rutinas/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTraceApp() *fiber.App {
	m := New()
	app := fiber.New()
	app.Use(m.TraceID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(logger.TraceIDFromContext(c.UserContext()))
	})
	return app
}

func doTraced(t *testing.T, header string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set(TraceIDHeader, header)
	}
	resp, err := newTraceApp().Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestTraceID_Generated(t *testing.T) {
	resp, contextID := doTraced(t, "")

	traceID := resp.Header.Get(TraceIDHeader)
	_, parseErr := uuid.Parse(traceID)
	assert.NoError(t, parseErr)
	assert.Equal(t, traceID, contextID)
}

func TestTraceID_Propagated(t *testing.T) {
	incoming := uuid.NewString()

	resp, contextID := doTraced(t, incoming)

	assert.Equal(t, incoming, resp.Header.Get(TraceIDHeader))
	assert.Equal(t, incoming, contextID)
}

func TestTraceID_MalformedReplaced(t *testing.T) {
	resp, contextID := doTraced(t, "not a uuid")

	traceID := resp.Header.Get(TraceIDHeader)
	assert.NotEqual(t, "not a uuid", traceID)
	_, parseErr := uuid.Parse(traceID)
	assert.NoError(t, parseErr)
	assert.Equal(t, traceID, contextID)
}
