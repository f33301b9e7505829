package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facturio/facturio/internal/api/dto"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/service"
	"github.com/facturio/facturio/internal/types"
)

type ClientHandler struct {
	service service.ClientService
	log     *logger.Logger
}

func NewClientHandler(service service.ClientService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a client
// @Description Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Format de requête invalide").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get clients
// @Description Get all clients ordered by display name
// @Tags Clients
// @Produce json
// @Param filter query types.QueryFilter false "Filter"
// @Success 200 {object} dto.ListClientsResponse
// @Router /clients [get]
func (h *ClientHandler) GetClients(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Paramètres de filtre invalides").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetClients(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a client
// @Description Get a client by ID
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a client
// @Description Merge the supplied fields into a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Client"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Format de requête invalide").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a client
// @Description Delete a client without invoices
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Client supprimé avec succès"})
}
