package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adminModels "github.com/locagest-api/internal/models/admin"
	adminService "github.com/locagest-api/internal/services/admin"
)

type TenantHandler struct {
	tenantService *adminService.TenantService
}

func NewTenantHandler(tenantService *adminService.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// ListTenants liste toutes les agences
// GET /api/v1/admin/tenants
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenantService.ListTenants(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tenants", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenants": tenants, "total": len(tenants)})
}

// GetTenant retourne une agence
// GET /api/v1/admin/tenants/:id
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// GetUsage retourne la consommation courante d'une agence
// GET /api/v1/admin/tenants/:id/usage
func (h *TenantHandler) GetUsage(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	usage, err := h.tenantService.GetUsage(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get usage", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// Suspend coupe l'accès d'une agence
// POST /api/v1/admin/tenants/:id/suspend
func (h *TenantHandler) Suspend(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	if err := h.tenantService.Suspend(c.Request.Context(), tenantID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to suspend tenant", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tenant suspended"})
}

// Reactivate rend l'accès à une agence suspendue
// POST /api/v1/admin/tenants/:id/reactivate
func (h *TenantHandler) Reactivate(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	if err := h.tenantService.Reactivate(c.Request.Context(), tenantID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to reactivate tenant", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tenant reactivated"})
}

// AssignPlan affecte un plan à une agence. Les quotas dépassés
// bloquent la réponse en 409, sauf drapeau force.
// POST /api/v1/admin/tenants/:id/plan
func (h *TenantHandler) AssignPlan(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	var req adminModels.AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	result, err := h.tenantService.AssignPlan(c.Request.Context(), tenantID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign plan", "details": err.Error()})
		return
	}

	if !result.Assigned {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
