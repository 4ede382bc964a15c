package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	tenantModels "github.com/locagest-api/internal/models/tenant"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, tenant_id, email, password_hash, name, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*tenantModels.User, error) {
	var user tenantModels.User
	err := row.Scan(
		&user.ID,
		&user.TenantID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retourne un utilisateur d'agence par email, scopé agence
func (r *UserRepository) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*tenantModels.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE tenant_id = $1 AND email = $2`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, tenantID, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByID retourne un utilisateur d'agence par ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenantModels.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// CreateTx enregistre un utilisateur d'agence, dans la transaction
// d'inscription
func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, email, passwordHash, name string) (*tenantModels.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (tenant_id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, userColumns)

	user, err := scanUser(tx.QueryRow(ctx, query, tenantID, email, passwordHash, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
