package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
)

type ClientRepository struct {
	db repository.DB
}

func NewClientRepository(db repository.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, tenant_id, first_name, last_name, email, phone, licence_number, created_at, updated_at`

func scanClient(row interface{ Scan(dest ...any) error }) (*tenantModels.Client, error) {
	var c tenantModels.Client
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.LicenceNumber,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create enregistre une fiche client
func (r *ClientRepository) Create(ctx context.Context, tenantID uuid.UUID, req *tenantModels.CreateClientRequest) (*tenantModels.Client, error) {
	query := fmt.Sprintf(`
		INSERT INTO clients (tenant_id, first_name, last_name, email, phone, licence_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, clientColumns)

	client, err := scanClient(r.db.QueryRow(ctx, query,
		tenantID, req.FirstName, req.LastName, req.Email, req.Phone, req.LicenceNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// GetByID retourne une fiche client, scopée agence
func (r *ClientRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*tenantModels.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE tenant_id = $1 AND id = $2`, clientColumns)

	client, err := scanClient(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// List retourne les clients de l'agence
func (r *ClientRepository) List(ctx context.Context, tenantID uuid.UUID) ([]tenantModels.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE tenant_id = $1 ORDER BY last_name ASC, first_name ASC`, clientColumns)

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []tenantModels.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// Update met à jour une fiche client, scopée agence
func (r *ClientRepository) Update(ctx context.Context, tenantID, id uuid.UUID, req *tenantModels.CreateClientRequest) (*tenantModels.Client, error) {
	query := fmt.Sprintf(`
		UPDATE clients
		SET first_name = $3, last_name = $4, email = $5, phone = $6, licence_number = $7, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING %s`, clientColumns)

	client, err := scanClient(r.db.QueryRow(ctx, query,
		tenantID, id, req.FirstName, req.LastName, req.Email, req.Phone, req.LicenceNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// Delete supprime une fiche client, scopée agence
func (r *ClientRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM clients WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("client not found")
	}
	return nil
}
