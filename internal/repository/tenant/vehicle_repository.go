package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
)

// VehicleRepository gère le parc de véhicules. Chaque requête est
// scopée par tenant_id : aucune ligne d'une autre agence ne doit
// être visible.
type VehicleRepository struct {
	db repository.DB
}

func NewVehicleRepository(db repository.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, tenant_id, registration, make, model, daily_rate, status, created_at, updated_at`

func scanVehicle(row interface{ Scan(dest ...any) error }) (*tenantModels.Vehicle, error) {
	var v tenantModels.Vehicle
	err := row.Scan(
		&v.ID,
		&v.TenantID,
		&v.Registration,
		&v.Make,
		&v.Model,
		&v.DailyRate,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create ajoute un véhicule au parc
func (r *VehicleRepository) Create(ctx context.Context, tenantID uuid.UUID, req *tenantModels.CreateVehicleRequest) (*tenantModels.Vehicle, error) {
	query := fmt.Sprintf(`
		INSERT INTO vehicles (tenant_id, registration, make, model, daily_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, vehicleColumns)

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query,
		tenantID, req.Registration, req.Make, req.Model, req.DailyRate))
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return vehicle, nil
}

// GetByID retourne un véhicule, scopé agence
func (r *VehicleRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*tenantModels.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE tenant_id = $1 AND id = $2`, vehicleColumns)

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return vehicle, nil
}

// List retourne le parc de l'agence
func (r *VehicleRepository) List(ctx context.Context, tenantID uuid.UUID) ([]tenantModels.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE tenant_id = $1 ORDER BY registration ASC`, vehicleColumns)

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []tenantModels.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// Update met à jour un véhicule, scopé agence
func (r *VehicleRepository) Update(ctx context.Context, tenantID, id uuid.UUID, req *tenantModels.UpdateVehicleRequest) (*tenantModels.Vehicle, error) {
	query := fmt.Sprintf(`
		UPDATE vehicles
		SET registration = $3, make = $4, model = $5, daily_rate = $6, status = $7, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING %s`, vehicleColumns)

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query,
		tenantID, id, req.Registration, req.Make, req.Model, req.DailyRate, req.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return vehicle, nil
}

// Delete retire un véhicule du parc, scopé agence
func (r *VehicleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}
