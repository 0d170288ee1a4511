package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/server/biz"
)

type ClientHandlersParams struct {
	fx.In

	ClientService *biz.ClientService
}

func NewClientHandlers(params ClientHandlersParams) *ClientHandlers {
	return &ClientHandlers{
		ClientService: params.ClientService,
	}
}

type ClientHandlers struct {
	ClientService *biz.ClientService
}

func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid id"))
		return primitive.NilObjectID, false
	}

	return id, true
}

func (h *ClientHandlers) Create(c *gin.Context) {
	var req biz.CreateClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	client, err := h.ClientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandlers) List(c *gin.Context) {
	clients, err := h.ClientService.ListClients(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	client, err := h.ClientService.GetClient(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

type UpdateClientNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *ClientHandlers) UpdateNotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateClientNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	if err := h.ClientService.UpdateClientNotes(c.Request.Context(), id, req.Notes); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ClientHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.ClientService.DeleteClient(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
