package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavelhq/gavel/internal/tenancy"
)

func newTenantRouter(t *testing.T) (*gin.Engine, *tenancy.Scope) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	captured := &tenancy.Scope{}

	router := gin.New()
	router.Use(Tenant(TenantConfig{
		FirmHeader:   "X-Gavel-Firm-Id",
		LawyerHeader: "X-Gavel-Lawyer-Id",
	}))
	router.GET("/ping", func(c *gin.Context) {
		scope, ok := tenancy.ScopeFromContext(c.Request.Context())
		require.True(t, ok)

		*captured = scope

		c.Status(http.StatusOK)
	})

	return router, captured
}

func TestTenantMiddleware_FirmHeader(t *testing.T) {
	router, captured := newTenantRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Gavel-Firm-Id", "F1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenancy.FirmScope("F1"), *captured)
}

func TestTenantMiddleware_LawyerHeader(t *testing.T) {
	router, captured := newTenantRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Gavel-Lawyer-Id", "L1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenancy.LawyerScope("L1"), *captured)
}

func TestTenantMiddleware_MissingIdentity(t *testing.T) {
	router, _ := newTenantRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantMiddleware_AmbiguousIdentity(t *testing.T) {
	router, _ := newTenantRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Gavel-Firm-Id", "F1")
	req.Header.Set("X-Gavel-Lawyer-Id", "L1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
