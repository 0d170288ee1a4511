package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/build"
	"github.com/gavelhq/gavel/internal/storage"
)

type SystemHandlersParams struct {
	fx.In

	Client *storage.Client
}

func NewSystemHandlers(params SystemHandlersParams) *SystemHandlers {
	return &SystemHandlers{
		Client: params.Client,
	}
}

type SystemHandlers struct {
	Client *storage.Client
}

// Health reports liveness plus database reachability.
func (h *SystemHandlers) Health(c *gin.Context) {
	if err := h.Client.Ping(c.Request.Context()); err != nil {
		JSONError(c, http.StatusServiceUnavailable, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": build.Version,
	})
}

// BuildInfo returns version and build metadata.
func (h *SystemHandlers) BuildInfo(c *gin.Context) {
	c.JSON(http.StatusOK, build.GetBuildInfo())
}
