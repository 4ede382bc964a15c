package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/locagest-api/internal/models/admin"
)

type SysUserRepository struct {
	db DB
}

func NewSysUserRepository(db DB) *SysUserRepository {
	return &SysUserRepository{db: db}
}

// GetByEmail retourne un admin de la console par email
func (r *SysUserRepository) GetByEmail(ctx context.Context, email string) (*admin.SysUser, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM sys_users
		WHERE email = $1
	`

	var user admin.SysUser
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sys user: %w", err)
	}

	return &user, nil
}

// GetByID retourne un admin de la console par ID
func (r *SysUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*admin.SysUser, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM sys_users
		WHERE id = $1
	`

	var user admin.SysUser
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sys user: %w", err)
	}

	return &user, nil
}
