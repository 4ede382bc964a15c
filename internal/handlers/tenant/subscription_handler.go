package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locagest-api/internal/middleware"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	tenantService "github.com/locagest-api/internal/services/tenant"
)

type SubscriptionHandler struct {
	subscriptionService *tenantService.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *tenantService.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// ChangePlan enregistre une demande de changement de plan. Le moindre
// quota dépassé bloque en 409 : aucun drapeau ne permet de passer outre.
// POST /api/v1/subscription/change
func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	var req tenantModels.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	result, err := h.subscriptionService.ChangePlan(c.Request.Context(), tenantID, req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to request plan change", "details": err.Error()})
		return
	}

	if !result.Requested {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetCurrent retourne l'abonnement actif de l'agence
// GET /api/v1/subscription
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	sub, err := h.subscriptionService.CurrentSubscription(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ConfirmPayment passe la demande en attente de vérification
// POST /api/v1/subscriptions/:id/confirm-payment
func (h *SubscriptionHandler) ConfirmPayment(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription ID"})
		return
	}

	if err := h.subscriptionService.ConfirmPayment(c.Request.Context(), tenantID, subID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to confirm payment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment confirmed, awaiting verification"})
}
