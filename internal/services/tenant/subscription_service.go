package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/database"
	adminModels "github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/quota"
	"github.com/locagest-api/internal/repository"
)

// SubscriptionService porte le changement de plan en libre-service.
// Contrairement à la console, il n'existe aucun moyen de passer outre
// un dépassement de quota : l'agence doit d'abord réduire sa
// consommation.
type SubscriptionService struct {
	db         repository.DB
	tenantRepo *repository.TenantRepository
	planRepo   *repository.PlanRepository
	subRepo    *repository.SubscriptionRepository
	usageRepo  *repository.UsageRepository
	logger     *zap.Logger
}

func NewSubscriptionService(
	db repository.DB,
	tenantRepo *repository.TenantRepository,
	planRepo *repository.PlanRepository,
	subRepo *repository.SubscriptionRepository,
	usageRepo *repository.UsageRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		db:         db,
		tenantRepo: tenantRepo,
		planRepo:   planRepo,
		subRepo:    subRepo,
		usageRepo:  usageRepo,
		logger:     logger,
	}
}

// ChangePlanResult décrit l'issue d'une demande de changement de plan
type ChangePlanResult struct {
	Requested     bool                      `json:"requested"`
	QuotaExceeded bool                      `json:"quota_exceeded"`
	Violations    []string                  `json:"violations,omitempty"`
	Message       string                    `json:"message"`
	Subscription  *adminModels.Subscription `json:"subscription,omitempty"`
}

// ChangePlan enregistre une demande de changement de plan. La demande
// part en attente de paiement ; elle ne devient active qu'après
// approbation par la console. Tout dépassement de quota bloque,
// sans exception.
func (s *SubscriptionService) ChangePlan(ctx context.Context, tenantID uuid.UUID, req tenantModels.ChangePlanRequest) (*ChangePlanResult, error) {
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
	if !plan.IsActive {
		return nil, fmt.Errorf("plan is not open to subscription")
	}

	// Photographie fraîche de la consommation, à chaque décision
	usage, err := s.usageRepo.GetUsage(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	limits := quota.LimitsFromPlan(plan.MaxVehicles, plan.MaxUsers, plan.MaxContracts, plan.MaxClients)
	violations := quota.Messages(quota.Evaluate(usage, limits))

	if len(violations) > 0 {
		return &ChangePlanResult{
			Requested:     false,
			QuotaExceeded: true,
			Violations:    violations,
			Message: fmt.Sprintf("Changement impossible, quotas dépassés : %s. Réduisez votre consommation puis réessayez.",
				strings.Join(violations, ", ")),
		}, nil
	}

	var sub *adminModels.Subscription
	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		created, err := s.subRepo.CreateTx(ctx, tx, tenant.ID, plan.ID, req.DurationMonths, shared.SubscriptionAwaitingPayment)
		if err != nil {
			return err
		}
		sub = created
		// Une agence active le reste pendant l'instruction de sa
		// demande : son abonnement courant continue de la couvrir et
		// elle doit pouvoir revenir confirmer le paiement. Le statut
		// pending_payment est réservé au parcours d'inscription,
		// avant tout premier plan.
		if tenant.Status == shared.TenantActive {
			return nil
		}
		return s.tenantRepo.SetStatusTx(ctx, tx, tenant.ID, shared.TenantPendingPayment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("plan change requested",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("plan_id", plan.ID.String()),
	)

	return &ChangePlanResult{
		Requested:    true,
		Message:      fmt.Sprintf("Demande enregistrée pour le plan %s, en attente de paiement", plan.Name),
		Subscription: sub,
	}, nil
}

// CurrentSubscription retourne l'abonnement actif de l'agence
func (s *SubscriptionService) CurrentSubscription(ctx context.Context, tenantID uuid.UUID) (*adminModels.Subscription, error) {
	return s.subRepo.GetActiveByTenant(ctx, tenantID)
}

// ConfirmPayment fait passer la demande en attente de vérification,
// une fois la preuve de paiement déposée
func (s *SubscriptionService) ConfirmPayment(ctx context.Context, tenantID, subscriptionID uuid.UUID) error {
	sub, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.TenantID != tenantID {
		return fmt.Errorf("subscription not found")
	}
	if sub.Status != shared.SubscriptionAwaitingPayment {
		return fmt.Errorf("subscription is %s, only %s can be confirmed",
			sub.Status, shared.SubscriptionAwaitingPayment)
	}

	return s.subRepo.SetStatus(ctx, subscriptionID, shared.SubscriptionAwaitingVerification)
}
