package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/storage"
	"github.com/gavelhq/gavel/internal/tenancy"
)

// JSONError returns a JSON error response and adds the error to gin context
// for access logging.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}

// RespondError maps service errors onto HTTP statuses. Isolation violations
// are programming errors in this service, not client faults, so they surface
// as 500 and land in the access log.
func RespondError(c *gin.Context, err error) {
	var (
		scopeErr     *tenancy.ScopeError
		isolationErr *tenancy.IsolationError
	)

	switch {
	case errors.Is(err, storage.ErrNotFound):
		JSONError(c, http.StatusNotFound, err)
	case errors.As(err, &scopeErr):
		JSONError(c, http.StatusBadRequest, err)
	case errors.As(err, &isolationErr):
		JSONError(c, http.StatusInternalServerError, err)
	default:
		JSONError(c, http.StatusInternalServerError, err)
	}
}
