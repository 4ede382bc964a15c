package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

func resolveTenant(c *gin.Context, tenantRepo *repository.TenantRepository) (*admin.Tenant, bool) {
	tenantIDStr, exists := c.Get("tenant_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not authenticated"})
		c.Abort()
		return nil, false
	}

	tenantID, err := uuid.Parse(tenantIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
		c.Abort()
		return nil, false
	}

	tenant, err := tenantRepo.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		c.Abort()
		return nil, false
	}

	return tenant, true
}

// TenantMiddleware résout l'agence portée par le jeton et vérifie
// qu'elle est active. Le plan courant est chargé pour exposer les
// drapeaux de modules aux gardes en aval.
func TenantMiddleware(tenantRepo *repository.TenantRepository, planRepo *repository.PlanRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := resolveTenant(c, tenantRepo)
		if !ok {
			return
		}

		ctx := c.Request.Context()

		if tenant.Status != shared.TenantActive || !tenant.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("tenant is %s", tenant.Status)})
			c.Abort()
			return
		}

		moduleAssistance := false
		if tenant.PlanID != nil {
			plan, err := planRepo.GetPlanByID(ctx, *tenant.PlanID)
			if err != nil {
				logger.Error("failed to load tenant plan",
					zap.String("tenant_id", tenant.ID.String()),
					zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tenant plan"})
				c.Abort()
				return
			}
			moduleAssistance = plan.ModuleAssistance
		}

		c.Set("tenant_uuid", tenant.ID)
		c.Set("module_assistance", moduleAssistance)

		c.Next()
	}
}

// TenantOnboardingMiddleware résout l'agence sans exiger le statut
// actif : une agence en cours d'inscription doit pouvoir choisir un
// plan et confirmer son paiement, et une agence qui a demandé un
// changement doit pouvoir revenir le confirmer. Les agences
// suspendues ou rejetées restent bloquées.
func TenantOnboardingMiddleware(tenantRepo *repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := resolveTenant(c, tenantRepo)
		if !ok {
			return
		}

		if tenant.Status == shared.TenantSuspended || tenant.Status == shared.TenantRejected {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("tenant is %s", tenant.Status)})
			c.Abort()
			return
		}

		c.Set("tenant_uuid", tenant.ID)

		c.Next()
	}
}

// RequireAssistanceModule bloque l'accès au module d'assistance quand
// le plan de l'agence ne l'inclut pas
func RequireAssistanceModule() gin.HandlerFunc {
	return func(c *gin.Context) {
		enabled, exists := c.Get("module_assistance")
		if !exists || !enabled.(bool) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "le module d'assistance n'est pas inclus dans votre plan, passez à un plan supérieur pour l'activer",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// TenantID récupère l'UUID de l'agence posé par TenantMiddleware
func TenantID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("tenant_uuid")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
