package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavelhq/gavel/internal/tracing"
)

func newTraceRouter(t *testing.T) (*gin.Engine, *string) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	captured := new(string)

	router := gin.New()
	router.Use(Trace(tracing.Config{
		TraceHeader:   "X-Gavel-Trace-Id",
		RequestHeader: "X-Gavel-Request-Id",
	}))
	router.GET("/ping", func(c *gin.Context) {
		traceID, ok := tracing.GetTraceID(c.Request.Context())
		require.True(t, ok)

		*captured = traceID

		c.Status(http.StatusOK)
	})

	return router, captured
}

func TestTraceMiddleware_ReusesInboundHeader(t *testing.T) {
	router, captured := newTraceRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Gavel-Trace-Id", "gv-upstream")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "gv-upstream", *captured)
	assert.Equal(t, "gv-upstream", rec.Header().Get("X-Gavel-Trace-Id"))
}

func TestTraceMiddleware_GeneratesID(t *testing.T) {
	router, captured := newTraceRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.True(t, strings.HasPrefix(*captured, "gv-"))
	assert.Equal(t, *captured, rec.Header().Get("X-Gavel-Trace-Id"))
}
