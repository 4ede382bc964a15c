package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locagest-api/internal/middleware"
	"github.com/locagest-api/internal/models/shared"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
)

type InfractionHandler struct {
	infractionRepo *tenantRepo.InfractionRepository
}

func NewInfractionHandler(infractionRepo *tenantRepo.InfractionRepository) *InfractionHandler {
	return &InfractionHandler{infractionRepo: infractionRepo}
}

// ListInfractions liste les infractions de l'agence
// GET /api/v1/infractions
func (h *InfractionHandler) ListInfractions(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	infractions, err := h.infractionRepo.List(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list infractions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"infractions": infractions, "total": len(infractions)})
}

// GetInfraction retourne une infraction
// GET /api/v1/infractions/:id
func (h *InfractionHandler) GetInfraction(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	infractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid infraction ID"})
		return
	}

	infraction, err := h.infractionRepo.GetByID(c.Request.Context(), tenantID, infractionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "infraction not found"})
		return
	}

	c.JSON(http.StatusOK, infraction)
}

// CreateInfraction enregistre une infraction, rattachée ou non à un
// contrat
// POST /api/v1/infractions
func (h *InfractionHandler) CreateInfraction(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	var req tenantModels.CreateInfractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	infraction, err := h.infractionRepo.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create infraction", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, infraction)
}

// UpdateInfractionStatus fait avancer le traitement d'une infraction
// PUT /api/v1/infractions/:id/status
func (h *InfractionHandler) UpdateInfractionStatus(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	infractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid infraction ID"})
		return
	}

	var req struct {
		Status shared.InfractionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.infractionRepo.UpdateStatus(c.Request.Context(), tenantID, infractionID, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to update infraction status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "infraction status updated"})
}
