package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/objects"
	"github.com/gavelhq/gavel/internal/server/biz"
)

type InvoiceHandlersParams struct {
	fx.In

	InvoiceService *biz.InvoiceService
}

func NewInvoiceHandlers(params InvoiceHandlersParams) *InvoiceHandlers {
	return &InvoiceHandlers{
		InvoiceService: params.InvoiceService,
	}
}

type InvoiceHandlers struct {
	InvoiceService *biz.InvoiceService
}

func (h *InvoiceHandlers) Create(c *gin.Context) {
	var req biz.CreateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	invoice, err := h.InvoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandlers) List(c *gin.Context) {
	status := objects.InvoiceStatus(c.Query("status"))

	invoices, err := h.InvoiceService.ListInvoices(c.Request.Context(), status)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	invoice, err := h.InvoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandlers) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.InvoiceService.MarkPaid(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandlers) StatusTotals(c *gin.Context) {
	totals, err := h.InvoiceService.StatusTotals(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}
