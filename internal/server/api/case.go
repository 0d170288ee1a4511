package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/server/biz"
)

type CaseHandlersParams struct {
	fx.In

	CaseService *biz.CaseService
}

func NewCaseHandlers(params CaseHandlersParams) *CaseHandlers {
	return &CaseHandlers{
		CaseService: params.CaseService,
	}
}

type CaseHandlers struct {
	CaseService *biz.CaseService
}

func (h *CaseHandlers) Open(c *gin.Context) {
	var req biz.OpenCaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	kase, err := h.CaseService.OpenCase(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, kase)
}

func (h *CaseHandlers) List(c *gin.Context) {
	status := objects.CaseStatus(c.Query("status"))

	cases, err := h.CaseService.ListCases(c.Request.Context(), status)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cases)
}

func (h *CaseHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	kase, err := h.CaseService.GetCase(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, kase)
}

func (h *CaseHandlers) Close(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.CaseService.CloseCase(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
