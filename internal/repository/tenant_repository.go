package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
)

type TenantRepository struct {
	db DB
}

func NewTenantRepository(db DB) *TenantRepository {
	return &TenantRepository{db: db}
}

const tenantColumns = `id, name, slug, plan_id, status, is_active, onboarding_completed, created_at, updated_at`

func scanTenant(row interface{ Scan(dest ...any) error }) (*admin.Tenant, error) {
	var tenant admin.Tenant
	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.PlanID,
		&tenant.Status,
		&tenant.IsActive,
		&tenant.OnboardingCompleted,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// CreateTenantTx enregistre une nouvelle agence en attente de choix
// de plan, dans la transaction d'inscription
func (r *TenantRepository) CreateTenantTx(ctx context.Context, tx pgx.Tx, name, slug string) (*admin.Tenant, error) {
	query := fmt.Sprintf(`
		INSERT INTO tenants (name, slug, status)
		VALUES ($1, $2, $3)
		RETURNING %s`, tenantColumns)

	tenant, err := scanTenant(tx.QueryRow(ctx, query, name, slug, shared.TenantPendingSelection))
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return tenant, nil
}

// GetTenantByID retourne une agence par ID
func (r *TenantRepository) GetTenantByID(ctx context.Context, tenantID uuid.UUID) (*admin.Tenant, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE id = $1`, tenantColumns)

	tenant, err := scanTenant(r.db.QueryRow(ctx, query, tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}

// GetTenantBySlug retourne une agence par slug
func (r *TenantRepository) GetTenantBySlug(ctx context.Context, slug string) (*admin.Tenant, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE slug = $1`, tenantColumns)

	tenant, err := scanTenant(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant by slug: %w", err)
	}

	return tenant, nil
}

// ListTenants retourne toutes les agences
func (r *TenantRepository) ListTenants(ctx context.Context) ([]admin.Tenant, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenants ORDER BY created_at DESC`, tenantColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []admin.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, *tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenants: %w", err)
	}

	return tenants, nil
}

// UpdateStatus change le statut d'une agence (suspension, réactivation)
func (r *TenantRepository) UpdateStatus(ctx context.Context, tenantID uuid.UUID, status shared.TenantStatus, isActive bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE tenants SET status = $2, is_active = $3, updated_at = NOW() WHERE id = $1`,
		tenantID, status, isActive)
	if err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found")
	}
	return nil
}

// SetStatusTx change le statut d'une agence dans une transaction en
// cours (demande de changement de plan)
func (r *TenantRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, status shared.TenantStatus) error {
	result, err := tx.Exec(ctx, `
		UPDATE tenants SET status = $2, updated_at = NOW() WHERE id = $1`,
		tenantID, status)
	if err != nil {
		return fmt.Errorf("failed to set tenant status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found")
	}
	return nil
}

// ActivateTx active une agence sur un plan, dans la transaction
// d'approbation. onboarding_completed repasse à false : l'agence
// refait son onboarding après chaque approbation de plan.
func (r *TenantRepository) ActivateTx(ctx context.Context, tx pgx.Tx, tenantID, planID uuid.UUID) error {
	result, err := tx.Exec(ctx, `
		UPDATE tenants
		SET plan_id = $2, status = $3, is_active = TRUE, onboarding_completed = FALSE, updated_at = NOW()
		WHERE id = $1`,
		tenantID, planID, shared.TenantActive)
	if err != nil {
		return fmt.Errorf("failed to activate tenant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found")
	}
	return nil
}

// RejectTx marque une agence rejetée, dans la transaction de rejet
func (r *TenantRepository) RejectTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID) error {
	result, err := tx.Exec(ctx, `
		UPDATE tenants SET status = $2, is_active = FALSE, updated_at = NOW() WHERE id = $1`,
		tenantID, shared.TenantRejected)
	if err != nil {
		return fmt.Errorf("failed to reject tenant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found")
	}
	return nil
}
