package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/server/biz"
)

type LeadHandlersParams struct {
	fx.In

	LeadService *biz.LeadService
}

func NewLeadHandlers(params LeadHandlersParams) *LeadHandlers {
	return &LeadHandlers{
		LeadService: params.LeadService,
	}
}

type LeadHandlers struct {
	LeadService *biz.LeadService
}

func (h *LeadHandlers) Create(c *gin.Context) {
	var req biz.CreateLeadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	lead, err := h.LeadService.CreateLead(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandlers) List(c *gin.Context) {
	status := objects.LeadStatus(c.Query("status"))

	leads, err := h.LeadService.ListLeads(c.Request.Context(), status)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandlers) Convert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.LeadService.ConvertLead(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *LeadHandlers) DiscardLost(c *gin.Context) {
	deleted, err := h.LeadService.DiscardLostLeads(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
