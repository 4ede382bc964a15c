package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/locagest-api/internal/quota"
)

// UsageRepository calcule la photographie de consommation d'une
// agence. Toujours recomptée à la demande, jamais mise en cache :
// une décision de quota s'appuie sur des comptes frais.
type UsageRepository struct {
	db DB
}

func NewUsageRepository(db DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// GetUsage compte les véhicules, utilisateurs actifs, contrats et
// clients de l'agence
func (r *UsageRepository) GetUsage(ctx context.Context, tenantID uuid.UUID) (quota.Usage, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM vehicles WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND is_active),
			(SELECT COUNT(*) FROM contracts WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM clients WHERE tenant_id = $1)
	`

	var usage quota.Usage
	err := r.db.QueryRow(ctx, query, tenantID).Scan(
		&usage.Vehicles,
		&usage.Users,
		&usage.Contracts,
		&usage.Clients,
	)
	if err != nil {
		return quota.Usage{}, fmt.Errorf("failed to count tenant usage: %w", err)
	}

	return usage, nil
}
