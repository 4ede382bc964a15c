package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/database"
	adminModels "github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

// SubscriptionService porte le workflow d'approbation des demandes
// d'abonnement. Chaque transition écrit l'abonnement et l'agence dans
// une même transaction.
type SubscriptionService struct {
	db         repository.DB
	subRepo    *repository.SubscriptionRepository
	tenantRepo *repository.TenantRepository
	logger     *zap.Logger
}

func NewSubscriptionService(
	db repository.DB,
	subRepo *repository.SubscriptionRepository,
	tenantRepo *repository.TenantRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		db:         db,
		subRepo:    subRepo,
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// ListByStatus expose la file de vérification
func (s *SubscriptionService) ListByStatus(ctx context.Context, status shared.SubscriptionStatus) ([]adminModels.Subscription, error) {
	return s.subRepo.ListByStatus(ctx, status)
}

// Approve active un abonnement en attente de vérification.
// Transitions : abonnement -> active ; agence -> active sur le plan
// demandé, onboarding à refaire. L'éventuel abonnement actif
// précédent est désactivé dans la même transaction, ce qui garantit
// un seul abonnement actif par agence.
func (s *SubscriptionService) Approve(ctx context.Context, subscriptionID uuid.UUID) (*adminModels.Subscription, error) {
	sub, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if sub.Status != shared.SubscriptionAwaitingVerification {
		return nil, fmt.Errorf("subscription is %s, only %s can be approved",
			sub.Status, shared.SubscriptionAwaitingVerification)
	}

	start := time.Now()
	end := start.AddDate(0, int(sub.DurationMonths), 0)

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.subRepo.DeactivatePreviousTx(ctx, tx, sub.TenantID); err != nil {
			return err
		}
		if err := s.subRepo.ActivateTx(ctx, tx, sub.ID, start, end); err != nil {
			return err
		}
		return s.tenantRepo.ActivateTx(ctx, tx, sub.TenantID, sub.PlanID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription approved",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("tenant_id", sub.TenantID.String()),
		zap.String("plan_id", sub.PlanID.String()),
	)

	return s.subRepo.GetByID(ctx, subscriptionID)
}

// Reject refuse un abonnement en attente de vérification.
// Transitions : abonnement -> cancelled ; agence -> rejected.
func (s *SubscriptionService) Reject(ctx context.Context, subscriptionID uuid.UUID) error {
	sub, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if sub.Status != shared.SubscriptionAwaitingVerification {
		return fmt.Errorf("subscription is %s, only %s can be rejected",
			sub.Status, shared.SubscriptionAwaitingVerification)
	}

	err = database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.subRepo.CancelTx(ctx, tx, sub.ID); err != nil {
			return err
		}
		return s.tenantRepo.RejectTx(ctx, tx, sub.TenantID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("subscription rejected",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("tenant_id", sub.TenantID.String()),
	)

	return nil
}
