package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminModels "github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/pricing"
	"github.com/locagest-api/internal/repository"
)

// PlanHandler expose le catalogue des plans ouverts à la souscription
type PlanHandler struct {
	planRepo *repository.PlanRepository
}

func NewPlanHandler(planRepo *repository.PlanRepository) *PlanHandler {
	return &PlanHandler{planRepo: planRepo}
}

// ListPlans retourne le catalogue, prix finaux calculés par durée
// GET /api/v1/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.GetActivePlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get plans", "details": err.Error()})
		return
	}

	responses := make([]adminModels.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		p := pricing.PlanPricing{
			Price6Months:     plan.Price6Months,
			Price12Months:    plan.Price12Months,
			Discount6Months:  plan.Discount6Months,
			Discount12Months: plan.Discount12Months,
		}
		six, _ := p.FinalPrice(shared.DurationSixMonths)
		twelve, _ := p.FinalPrice(shared.DurationTwelveMonths)

		responses = append(responses, adminModels.PlanResponse{
			Plan:               plan,
			FinalPrice6Months:  six,
			FinalPrice12Months: twelve,
		})
	}

	c.JSON(http.StatusOK, adminModels.PlanListResponse{
		Plans: responses,
		Total: len(responses),
	})
}
