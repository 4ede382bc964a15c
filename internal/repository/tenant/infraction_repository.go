package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

type InfractionRepository struct {
	db repository.DB
}

func NewInfractionRepository(db repository.DB) *InfractionRepository {
	return &InfractionRepository{db: db}
}

const infractionColumns = `id, tenant_id, vehicle_id, contract_id, occurred_on, amount, nature, status, created_at, updated_at`

func scanInfraction(row interface{ Scan(dest ...any) error }) (*tenantModels.Infraction, error) {
	var i tenantModels.Infraction
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.VehicleID,
		&i.ContractID,
		&i.OccurredOn,
		&i.Amount,
		&i.Nature,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create enregistre une infraction reçue
func (r *InfractionRepository) Create(ctx context.Context, tenantID uuid.UUID, req *tenantModels.CreateInfractionRequest) (*tenantModels.Infraction, error) {
	query := fmt.Sprintf(`
		INSERT INTO infractions (tenant_id, vehicle_id, contract_id, occurred_on, amount, nature)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, infractionColumns)

	infraction, err := scanInfraction(r.db.QueryRow(ctx, query,
		tenantID, req.VehicleID, req.ContractID, req.OccurredOn, req.Amount, req.Nature))
	if err != nil {
		return nil, fmt.Errorf("failed to create infraction: %w", err)
	}

	return infraction, nil
}

// GetByID retourne une infraction, scopée agence
func (r *InfractionRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*tenantModels.Infraction, error) {
	query := fmt.Sprintf(`SELECT %s FROM infractions WHERE tenant_id = $1 AND id = $2`, infractionColumns)

	infraction, err := scanInfraction(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get infraction: %w", err)
	}

	return infraction, nil
}

// List retourne les infractions de l'agence
func (r *InfractionRepository) List(ctx context.Context, tenantID uuid.UUID) ([]tenantModels.Infraction, error) {
	query := fmt.Sprintf(`SELECT %s FROM infractions WHERE tenant_id = $1 ORDER BY occurred_on DESC`, infractionColumns)

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query infractions: %w", err)
	}
	defer rows.Close()

	var infractions []tenantModels.Infraction
	for rows.Next() {
		infraction, err := scanInfraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan infraction: %w", err)
		}
		infractions = append(infractions, *infraction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating infractions: %w", err)
	}

	return infractions, nil
}

// UpdateStatus fait avancer le traitement d'une infraction
func (r *InfractionRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status shared.InfractionStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE infractions SET status = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status)
	if err != nil {
		return fmt.Errorf("failed to update infraction status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("infraction not found")
	}
	return nil
}
