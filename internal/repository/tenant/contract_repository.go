package tenant

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

type ContractRepository struct {
	db repository.DB
}

func NewContractRepository(db repository.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const contractColumns = `id, tenant_id, reference, client_id, vehicle_id, start_date, end_date, daily_rate, status, created_at, updated_at`

func scanContract(row interface{ Scan(dest ...any) error }) (*tenantModels.Contract, error) {
	var c tenantModels.Contract
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Reference,
		&c.ClientID,
		&c.VehicleID,
		&c.StartDate,
		&c.EndDate,
		&c.DailyRate,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// NextSequenceTx retourne le prochain numéro de contrat de l'année,
// par agence. Le verrou consultatif, tenu jusqu'à la fin de la
// transaction, sérialise les créations simultanées d'une même agence :
// sans lui, deux requêtes concurrentes tireraient le même numéro.
func (r *ContractRepository) NextSequenceTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, year int) (int, error) {
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1 || ':contracts'))`,
		tenantID.String()); err != nil {
		return 0, fmt.Errorf("failed to lock contract sequence: %w", err)
	}

	var count int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM contracts
		WHERE tenant_id = $1 AND reference LIKE $2`,
		tenantID, fmt.Sprintf("CT-%d-%%", year)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contracts: %w", err)
	}
	return count + 1, nil
}

// CreateTx ouvre un contrat et son premier segment d'affectation
// véhicule, dans la même transaction
func (r *ContractRepository) CreateTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, reference string, req *tenantModels.CreateContractRequest) (*tenantModels.Contract, error) {
	query := fmt.Sprintf(`
		INSERT INTO contracts (tenant_id, reference, client_id, vehicle_id, start_date, end_date, daily_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, contractColumns)

	contract, err := scanContract(tx.QueryRow(ctx, query,
		tenantID, reference, req.ClientID, req.VehicleID, req.StartDate, req.EndDate, req.DailyRate))
	if err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO contract_segments (tenant_id, contract_id, vehicle_id, starts_on, daily_rate)
		VALUES ($1, $2, $3, $4, $5)`,
		tenantID, contract.ID, req.VehicleID, req.StartDate, req.DailyRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create first contract segment: %w", err)
	}

	return contract, nil
}

// GetByID retourne un contrat, scopé agence
func (r *ContractRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*tenantModels.Contract, error) {
	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE tenant_id = $1 AND id = $2`, contractColumns)

	contract, err := scanContract(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	return contract, nil
}

// List retourne les contrats de l'agence, avec filtres optionnels
func (r *ContractRepository) List(ctx context.Context, tenantID uuid.UUID, filter tenantModels.ContractFilter) ([]tenantModels.Contract, error) {
	builder := psql.
		Select("id", "tenant_id", "reference", "client_id", "vehicle_id",
			"start_date", "end_date", "daily_rate", "status", "created_at", "updated_at").
		From("contracts").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("start_date DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.ClientID != nil {
		builder = builder.Where(sq.Eq{"client_id": *filter.ClientID})
	}
	if filter.VehicleID != nil {
		builder = builder.Where(sq.Eq{"vehicle_id": *filter.VehicleID})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"start_date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.LtOrEq{"start_date": *filter.To})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build contracts query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []tenantModels.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, *contract)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contracts: %w", err)
	}

	return contracts, nil
}

// UpdateStatus change l'état d'un contrat, scopé agence
func (r *ContractRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status shared.ContractStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE contracts SET status = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status)
	if err != nil {
		return fmt.Errorf("failed to update contract status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("contract not found")
	}
	return nil
}

// ChangeVehicleTx ouvre un nouveau segment d'affectation et aligne le
// véhicule courant du contrat, dans la même transaction
func (r *ContractRepository) ChangeVehicleTx(ctx context.Context, tx pgx.Tx, tenantID, contractID uuid.UUID, req *tenantModels.ChangeVehicleRequest) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO contract_segments (tenant_id, contract_id, vehicle_id, starts_on, daily_rate)
		VALUES ($1, $2, $3, $4, $5)`,
		tenantID, contractID, req.VehicleID, req.StartsOn, req.DailyRate)
	if err != nil {
		return fmt.Errorf("failed to create contract segment: %w", err)
	}

	result, err := tx.Exec(ctx, `
		UPDATE contracts SET vehicle_id = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, contractID, req.VehicleID)
	if err != nil {
		return fmt.Errorf("failed to update contract vehicle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("contract not found")
	}
	return nil
}

// GetSegments retourne les segments d'un contrat, ordonnés par date
func (r *ContractRepository) GetSegments(ctx context.Context, tenantID, contractID uuid.UUID) ([]tenantModels.ContractSegment, error) {
	query := `
		SELECT id, tenant_id, contract_id, vehicle_id, starts_on, daily_rate, created_at
		FROM contract_segments
		WHERE tenant_id = $1 AND contract_id = $2
		ORDER BY starts_on ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract segments: %w", err)
	}
	defer rows.Close()

	var segments []tenantModels.ContractSegment
	for rows.Next() {
		var s tenantModels.ContractSegment
		if err := rows.Scan(
			&s.ID,
			&s.TenantID,
			&s.ContractID,
			&s.VehicleID,
			&s.StartsOn,
			&s.DailyRate,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract segment: %w", err)
		}
		segments = append(segments, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract segments: %w", err)
	}

	return segments, nil
}
