package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/locagest-api/internal/models/admin"
)

type PlanRepository struct {
	db DB
}

func NewPlanRepository(db DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, name, description, max_vehicles, max_users, max_contracts, max_clients,
		module_assistance, price_6_months, price_12_months, discount_6_months, discount_12_months,
		is_active, created_at, updated_at`

func scanPlan(row interface{ Scan(dest ...any) error }) (*admin.Plan, error) {
	var plan admin.Plan
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.MaxVehicles,
		&plan.MaxUsers,
		&plan.MaxContracts,
		&plan.MaxClients,
		&plan.ModuleAssistance,
		&plan.Price6Months,
		&plan.Price12Months,
		&plan.Discount6Months,
		&plan.Discount12Months,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetAllPlans retourne tous les plans
func (r *PlanRepository) GetAllPlans(ctx context.Context) ([]admin.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans ORDER BY name ASC`, planColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []admin.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}

	return plans, nil
}

// GetActivePlans retourne les plans ouverts à la souscription
func (r *PlanRepository) GetActivePlans(ctx context.Context) ([]admin.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE is_active ORDER BY name ASC`, planColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active plans: %w", err)
	}
	defer rows.Close()

	var plans []admin.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}

	return plans, nil
}

// GetPlanByID retourne un plan par ID
func (r *PlanRepository) GetPlanByID(ctx context.Context, planID uuid.UUID) (*admin.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE id = $1`, planColumns)

	plan, err := scanPlan(r.db.QueryRow(ctx, query, planID))
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return plan, nil
}

// CreatePlan crée un nouveau plan
func (r *PlanRepository) CreatePlan(ctx context.Context, req admin.CreatePlanRequest) (*admin.Plan, error) {
	query := fmt.Sprintf(`
		INSERT INTO plans (name, description, max_vehicles, max_users, max_contracts, max_clients,
			module_assistance, price_6_months, price_12_months, discount_6_months, discount_12_months)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s`, planColumns)

	plan, err := scanPlan(r.db.QueryRow(ctx, query,
		req.Name,
		req.Description,
		req.MaxVehicles,
		req.MaxUsers,
		req.MaxContracts,
		req.MaxClients,
		req.ModuleAssistance,
		req.Price6Months,
		req.Price12Months,
		req.Discount6Months,
		req.Discount12Months,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return plan, nil
}

// UpdatePlan met à jour un plan existant
func (r *PlanRepository) UpdatePlan(ctx context.Context, planID uuid.UUID, req admin.UpdatePlanRequest) (*admin.Plan, error) {
	query := fmt.Sprintf(`
		UPDATE plans
		SET name = $2, description = $3, max_vehicles = $4, max_users = $5, max_contracts = $6,
			max_clients = $7, module_assistance = $8, price_6_months = $9, price_12_months = $10,
			discount_6_months = $11, discount_12_months = $12, is_active = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, planColumns)

	plan, err := scanPlan(r.db.QueryRow(ctx, query,
		planID,
		req.Name,
		req.Description,
		req.MaxVehicles,
		req.MaxUsers,
		req.MaxContracts,
		req.MaxClients,
		req.ModuleAssistance,
		req.Price6Months,
		req.Price12Months,
		req.Discount6Months,
		req.Discount12Months,
		req.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	return plan, nil
}

// DeletePlan supprime un plan (refusé s'il est encore utilisé)
func (r *PlanRepository) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	var count int
	checkQuery := `SELECT COUNT(*) FROM tenants WHERE plan_id = $1`
	if err := r.db.QueryRow(ctx, checkQuery, planID).Scan(&count); err != nil {
		return fmt.Errorf("failed to check plan usage: %w", err)
	}

	if count > 0 {
		return fmt.Errorf("cannot delete plan: %d tenants are using this plan", count)
	}

	result, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("plan not found")
	}

	return nil
}
