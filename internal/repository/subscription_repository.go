package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
)

type SubscriptionRepository struct {
	db DB
}

func NewSubscriptionRepository(db DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = `id, tenant_id, plan_id, duration_months, start_date, end_date, status, is_active, created_at, updated_at`

func scanSubscription(row interface{ Scan(dest ...any) error }) (*admin.Subscription, error) {
	var sub admin.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.TenantID,
		&sub.PlanID,
		&sub.DurationMonths,
		&sub.StartDate,
		&sub.EndDate,
		&sub.Status,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateTx enregistre une demande d'abonnement en attente, dans la
// transaction qui met aussi à jour le statut de l'agence
func (r *SubscriptionRepository) CreateTx(ctx context.Context, tx pgx.Tx, tenantID, planID uuid.UUID, duration shared.Duration, status shared.SubscriptionStatus) (*admin.Subscription, error) {
	query := fmt.Sprintf(`
		INSERT INTO subscriptions (tenant_id, plan_id, duration_months, status)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, subscriptionColumns)

	sub, err := scanSubscription(tx.QueryRow(ctx, query, tenantID, planID, duration, status))
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return sub, nil
}

// SetStatus change le statut d'un abonnement hors transition
// d'activation (confirmation de paiement)
func (r *SubscriptionRepository) SetStatus(ctx context.Context, id uuid.UUID, status shared.SubscriptionStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE subscriptions SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to set subscription status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found")
	}
	return nil
}

// CreateActiveTx insère un abonnement directement actif. Utilisé par
// l'affectation administrative, dans la transaction qui désactive
// l'abonnement précédent.
func (r *SubscriptionRepository) CreateActiveTx(ctx context.Context, tx pgx.Tx, tenantID, planID uuid.UUID, duration shared.Duration, start, end time.Time) (*admin.Subscription, error) {
	query := fmt.Sprintf(`
		INSERT INTO subscriptions (tenant_id, plan_id, duration_months, status, is_active, start_date, end_date)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6)
		RETURNING %s`, subscriptionColumns)

	sub, err := scanSubscription(tx.QueryRow(ctx, query,
		tenantID, planID, duration, shared.SubscriptionActive, start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to create active subscription: %w", err)
	}

	return sub, nil
}

// GetByID retourne un abonnement par ID
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*admin.Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE id = $1`, subscriptionColumns)

	sub, err := scanSubscription(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return sub, nil
}

// ListByStatus retourne les abonnements d'un statut donné, les plus
// anciens d'abord : c'est la file de vérification de la console
func (r *SubscriptionRepository) ListByStatus(ctx context.Context, status shared.SubscriptionStatus) ([]admin.Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE status = $1 ORDER BY created_at ASC`, subscriptionColumns)

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []admin.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, *sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// GetActiveByTenant retourne l'abonnement actif d'une agence, s'il existe
func (r *SubscriptionRepository) GetActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*admin.Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE tenant_id = $1 AND is_active`, subscriptionColumns)

	sub, err := scanSubscription(r.db.QueryRow(ctx, query, tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	return sub, nil
}

// DeactivatePreviousTx annule l'abonnement actif d'une agence avant
// l'activation du nouveau. Doit s'exécuter dans la même transaction
// que l'activation pour préserver l'invariant « un seul actif ».
func (r *SubscriptionRepository) DeactivatePreviousTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE subscriptions
		SET is_active = FALSE, status = $2, updated_at = NOW()
		WHERE tenant_id = $1 AND is_active`,
		tenantID, shared.SubscriptionCancelled)
	if err != nil {
		return fmt.Errorf("failed to deactivate previous subscription: %w", err)
	}
	return nil
}

// ActivateTx active un abonnement avec ses dates de validité
func (r *SubscriptionRepository) ActivateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, start, end time.Time) error {
	result, err := tx.Exec(ctx, `
		UPDATE subscriptions
		SET status = $2, is_active = TRUE, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $1`,
		id, shared.SubscriptionActive, start, end)
	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found")
	}
	return nil
}

// CancelTx annule un abonnement (rejet de la demande)
func (r *SubscriptionRepository) CancelTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	result, err := tx.Exec(ctx, `
		UPDATE subscriptions
		SET status = $2, is_active = FALSE, updated_at = NOW()
		WHERE id = $1`,
		id, shared.SubscriptionCancelled)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found")
	}
	return nil
}
