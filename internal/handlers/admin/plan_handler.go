package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adminModels "github.com/locagest-api/internal/models/admin"
	adminService "github.com/locagest-api/internal/services/admin"
)

type PlanHandler struct {
	planService *adminService.PlanService
}

func NewPlanHandler(planService *adminService.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// GetAllPlans liste tous les plans, prix finaux calculés (cache Redis)
// GET /api/v1/admin/plans
func (h *PlanHandler) GetAllPlans(c *gin.Context) {
	plans, err := h.planService.GetAllPlansWithCache(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get plans", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, adminModels.PlanListResponse{
		Plans: plans,
		Total: len(plans),
	})
}

// GetPlanByID retourne un plan (cache Redis)
// GET /api/v1/admin/plans/:id
func (h *PlanHandler) GetPlanByID(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	plan, err := h.planService.GetPlanByIDWithCache(c.Request.Context(), planID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// CreatePlan crée un plan
// POST /api/v1/admin/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req adminModels.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan met à jour un plan
// PUT /api/v1/admin/plans/:id
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	var req adminModels.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), planID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan supprime un plan sans agence rattachée
// DELETE /api/v1/admin/plans/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID"})
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), planID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to delete plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}
