package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/repository"
)

type AssistanceRepository struct {
	db repository.DB
}

func NewAssistanceRepository(db repository.DB) *AssistanceRepository {
	return &AssistanceRepository{db: db}
}

const assistanceColumns = `id, tenant_id, dossier_number, vehicle_id, insurer_reference, opened_on, closed_on, status, created_at, updated_at`

func scanAssistance(row interface{ Scan(dest ...any) error }) (*tenantModels.Assistance, error) {
	var a tenantModels.Assistance
	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.DossierNumber,
		&a.VehicleID,
		&a.InsurerReference,
		&a.OpenedOn,
		&a.ClosedOn,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// NextSequenceTx retourne le prochain numéro de dossier de l'année.
// Le verrou consultatif sérialise les ouvertures simultanées d'une
// même agence pour que deux dossiers ne tirent pas le même numéro.
func (r *AssistanceRepository) NextSequenceTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, year int) (int, error) {
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1 || ':assistances'))`,
		tenantID.String()); err != nil {
		return 0, fmt.Errorf("failed to lock assistance sequence: %w", err)
	}

	var count int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM assistances
		WHERE tenant_id = $1 AND dossier_number LIKE $2`,
		tenantID, fmt.Sprintf("AS-%d-%%", year)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assistances: %w", err)
	}
	return count + 1, nil
}

// CreateTx ouvre un dossier d'assistance dans la transaction qui a
// alloué son numéro
func (r *AssistanceRepository) CreateTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, dossierNumber string, req *tenantModels.CreateAssistanceRequest) (*tenantModels.Assistance, error) {
	query := fmt.Sprintf(`
		INSERT INTO assistances (tenant_id, dossier_number, vehicle_id, insurer_reference, opened_on)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, assistanceColumns)

	assistance, err := scanAssistance(tx.QueryRow(ctx, query,
		tenantID, dossierNumber, req.VehicleID, req.InsurerReference, req.OpenedOn))
	if err != nil {
		return nil, fmt.Errorf("failed to create assistance: %w", err)
	}

	return assistance, nil
}

// GetByID retourne un dossier, scopé agence
func (r *AssistanceRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*tenantModels.Assistance, error) {
	query := fmt.Sprintf(`SELECT %s FROM assistances WHERE tenant_id = $1 AND id = $2`, assistanceColumns)

	assistance, err := scanAssistance(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get assistance: %w", err)
	}

	return assistance, nil
}

// List retourne les dossiers de l'agence
func (r *AssistanceRepository) List(ctx context.Context, tenantID uuid.UUID) ([]tenantModels.Assistance, error) {
	query := fmt.Sprintf(`SELECT %s FROM assistances WHERE tenant_id = $1 ORDER BY opened_on DESC`, assistanceColumns)

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assistances: %w", err)
	}
	defer rows.Close()

	var assistances []tenantModels.Assistance
	for rows.Next() {
		assistance, err := scanAssistance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assistance: %w", err)
		}
		assistances = append(assistances, *assistance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assistances: %w", err)
	}

	return assistances, nil
}

// UpdateStatus fait avancer le dossier ; la clôture fixe closed_on
func (r *AssistanceRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status shared.AssistanceStatus) error {
	var closedOn *time.Time
	if status == shared.AssistanceClosed {
		now := time.Now()
		closedOn = &now
	}

	result, err := r.db.Exec(ctx, `
		UPDATE assistances SET status = $3, closed_on = $4, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status, closedOn)
	if err != nil {
		return fmt.Errorf("failed to update assistance status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("assistance not found")
	}
	return nil
}
