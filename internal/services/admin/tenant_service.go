package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/database"
	adminModels "github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/quota"
	"github.com/locagest-api/internal/repository"
)

type TenantService struct {
	db         repository.DB
	tenantRepo *repository.TenantRepository
	planRepo   *repository.PlanRepository
	subRepo    *repository.SubscriptionRepository
	usageRepo  *repository.UsageRepository
	logger     *zap.Logger
}

func NewTenantService(
	db repository.DB,
	tenantRepo *repository.TenantRepository,
	planRepo *repository.PlanRepository,
	subRepo *repository.SubscriptionRepository,
	usageRepo *repository.UsageRepository,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		db:         db,
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		subRepo:    subRepo,
		usageRepo:  usageRepo,
		logger:     logger,
	}
}

// ListTenants retourne toutes les agences
func (s *TenantService) ListTenants(ctx context.Context) ([]adminModels.Tenant, error) {
	return s.tenantRepo.ListTenants(ctx)
}

// GetTenant retourne une agence par ID
func (s *TenantService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*adminModels.Tenant, error) {
	return s.tenantRepo.GetTenantByID(ctx, tenantID)
}

// GetUsage retourne la consommation courante d'une agence
func (s *TenantService) GetUsage(ctx context.Context, tenantID uuid.UUID) (*adminModels.TenantUsageResponse, error) {
	usage, err := s.usageRepo.GetUsage(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &adminModels.TenantUsageResponse{
		TenantID:  tenantID,
		Vehicles:  usage.Vehicles,
		Users:     usage.Users,
		Contracts: usage.Contracts,
		Clients:   usage.Clients,
	}, nil
}

// Suspend coupe l'accès d'une agence à l'API sans toucher à son
// abonnement : la réactivation la remet dans l'état où elle était
func (s *TenantService) Suspend(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.Status == shared.TenantSuspended {
		return fmt.Errorf("tenant is already suspended")
	}

	if err := s.tenantRepo.UpdateStatus(ctx, tenantID, shared.TenantSuspended, false); err != nil {
		return err
	}

	s.logger.Info("tenant suspended", zap.String("tenant_id", tenantID.String()))
	return nil
}

// Reactivate rend l'accès à une agence suspendue
func (s *TenantService) Reactivate(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.Status != shared.TenantSuspended {
		return fmt.Errorf("tenant is %s, only suspended tenants can be reactivated", tenant.Status)
	}

	if err := s.tenantRepo.UpdateStatus(ctx, tenantID, shared.TenantActive, true); err != nil {
		return err
	}

	s.logger.Info("tenant reactivated", zap.String("tenant_id", tenantID.String()))
	return nil
}

// AssignPlan affecte un plan à une agence depuis la console.
// Un dépassement de quota bloque l'affectation, sauf si l'opérateur
// pose le drapeau force : l'affectation passe alors et la confirmation
// est annotée du dépassement. C'est la soupape de la console ; le
// changement en libre-service n'a pas d'équivalent.
func (s *TenantService) AssignPlan(ctx context.Context, tenantID uuid.UUID, req adminModels.AssignPlanRequest) (*adminModels.AssignPlanResult, error) {
	if !req.DurationMonths.Valid() {
		return nil, fmt.Errorf("durée invalide: %d mois", req.DurationMonths)
	}

	tenant, err := s.tenantRepo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetPlanByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	// Photographie fraîche de la consommation, à chaque décision
	usage, err := s.usageRepo.GetUsage(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	limits := quota.LimitsFromPlan(plan.MaxVehicles, plan.MaxUsers, plan.MaxContracts, plan.MaxClients)
	violations := quota.Messages(quota.Evaluate(usage, limits))

	if len(violations) > 0 && !req.Force {
		return &adminModels.AssignPlanResult{
			Assigned:      false,
			QuotaExceeded: true,
			Violations:    violations,
			Message: fmt.Sprintf("Affectation bloquée, quotas dépassés : %s",
				strings.Join(violations, ", ")),
		}, nil
	}

	start := time.Now()
	end := start.AddDate(0, int(req.DurationMonths), 0)

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.subRepo.DeactivatePreviousTx(ctx, tx, tenant.ID); err != nil {
			return err
		}
		if _, err := s.subRepo.CreateActiveTx(ctx, tx, tenant.ID, plan.ID, req.DurationMonths, start, end); err != nil {
			return err
		}
		return s.tenantRepo.ActivateTx(ctx, tx, tenant.ID, plan.ID)
	})
	if err != nil {
		return nil, err
	}

	result := &adminModels.AssignPlanResult{
		Assigned: true,
		Forced:   req.Force && len(violations) > 0,
		Message:  fmt.Sprintf("Plan %s affecté à %s", plan.Name, tenant.Name),
	}

	if len(violations) > 0 {
		result.QuotaExceeded = true
		result.Violations = violations
		result.Message = fmt.Sprintf("%s — attention, quotas dépassés : %s",
			result.Message, strings.Join(violations, ", "))
	}

	s.logger.Info("plan assigned",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("plan_id", plan.ID.String()),
		zap.Bool("forced", result.Forced),
	)

	return result, nil
}
