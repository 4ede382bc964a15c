package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locagest-api/internal/middleware"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
)

type ClientHandler struct {
	clientRepo *tenantRepo.ClientRepository
}

func NewClientHandler(clientRepo *tenantRepo.ClientRepository) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo}
}

// ListClients liste les clients de l'agence
// GET /api/v1/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	clients, err := h.clientRepo.List(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients, "total": len(clients)})
}

// GetClient retourne une fiche client
// GET /api/v1/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client ID"})
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), tenantID, clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// CreateClient crée une fiche client
// POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	var req tenantModels.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	client, err := h.clientRepo.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, client)
}

// UpdateClient met à jour une fiche client
// PUT /api/v1/clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client ID"})
		return
	}

	var req tenantModels.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	client, err := h.clientRepo.Update(c.Request.Context(), tenantID, clientID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient supprime une fiche client
// DELETE /api/v1/clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client ID"})
		return
	}

	if err := h.clientRepo.Delete(c.Request.Context(), tenantID, clientID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to delete client", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
