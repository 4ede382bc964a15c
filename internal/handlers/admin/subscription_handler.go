package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locagest-api/internal/models/shared"
	adminService "github.com/locagest-api/internal/services/admin"
)

type SubscriptionHandler struct {
	subscriptionService *adminService.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *adminService.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// ListSubscriptions liste les abonnements d'un statut donné ; par
// défaut la file en attente de vérification
// GET /api/v1/admin/subscriptions?status=...
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	status := shared.SubscriptionStatus(c.DefaultQuery("status", string(shared.SubscriptionAwaitingVerification)))

	subs, err := h.subscriptionService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subscriptions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs, "total": len(subs)})
}

// Approve approuve une demande en attente de vérification
// POST /api/v1/admin/subscriptions/:id/approve
func (h *SubscriptionHandler) Approve(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription ID"})
		return
	}

	sub, err := h.subscriptionService.Approve(c.Request.Context(), subID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to approve subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Reject refuse une demande en attente de vérification
// POST /api/v1/admin/subscriptions/:id/reject
func (h *SubscriptionHandler) Reject(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription ID"})
		return
	}

	if err := h.subscriptionService.Reject(c.Request.Context(), subID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to reject subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscription rejected"})
}
