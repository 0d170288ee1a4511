package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gavelhq/gavel/internal/tenancy"
)

// TenantConfig names the headers carrying the resolved tenant identity.
type TenantConfig struct {
	FirmHeader   string
	LawyerHeader string
}

// Tenant is the request-context resolver seam: the authenticating gateway in
// front of this service verifies the caller and forwards the tenant identity
// in headers; this middleware turns it into a tenancy.Scope for application
// code. It performs no authentication of its own.
//
// Requests carrying neither identity, or both, are rejected up front: no
// handler should ever run without a well-formed scope in context.
func Tenant(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := tenancy.Scope{
			FirmID:   c.GetHeader(cfg.FirmHeader),
			LawyerID: c.GetHeader(cfg.LawyerHeader),
		}

		if err := scope.Validate(); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or ambiguous tenant identity",
			})

			return
		}

		ctx := tenancy.WithScope(c.Request.Context(), scope)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
