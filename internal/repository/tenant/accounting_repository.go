package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
)

type AccountingRepository struct {
	db repository.DB
}

func NewAccountingRepository(db repository.DB) *AccountingRepository {
	return &AccountingRepository{db: db}
}

// NextSequenceTx retourne le prochain numéro de pièce du journal des
// ventes pour l'année. Le verrou consultatif sérialise les pièces
// simultanées d'une même agence : le numéro doit être unique.
func (r *AccountingRepository) NextSequenceTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, year int) (int, error) {
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1 || ':ventes'))`,
		tenantID.String()); err != nil {
		return 0, fmt.Errorf("failed to lock journal sequence: %w", err)
	}

	var count int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(DISTINCT journal_reference) FROM accounting_entries
		WHERE tenant_id = $1 AND journal_reference LIKE $2`,
		tenantID, fmt.Sprintf("VE-%d-%%", year)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal references: %w", err)
	}
	return count + 1, nil
}

// InsertEntriesTx enregistre les lignes d'une pièce comptable dans
// une transaction : une pièce est écrite entière ou pas du tout
func (r *AccountingRepository) InsertEntriesTx(ctx context.Context, tx pgx.Tx, entries []tenantModels.AccountingEntry) error {
	query := `
		INSERT INTO accounting_entries (tenant_id, journal_reference, entry_date, account_code, label, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, e := range entries {
		if _, err := tx.Exec(ctx, query,
			e.TenantID, e.JournalReference, e.EntryDate, e.AccountCode, e.Label, e.Debit, e.Credit); err != nil {
			return fmt.Errorf("failed to insert accounting entry: %w", err)
		}
	}

	return nil
}

// List retourne les écritures de l'agence, pièce par pièce
func (r *AccountingRepository) List(ctx context.Context, tenantID uuid.UUID) ([]tenantModels.AccountingEntry, error) {
	query := `
		SELECT id, tenant_id, journal_reference, entry_date, account_code, label, debit, credit, created_at
		FROM accounting_entries
		WHERE tenant_id = $1
		ORDER BY entry_date DESC, journal_reference DESC, account_code ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounting entries: %w", err)
	}
	defer rows.Close()

	var entries []tenantModels.AccountingEntry
	for rows.Next() {
		var e tenantModels.AccountingEntry
		if err := rows.Scan(
			&e.ID,
			&e.TenantID,
			&e.JournalReference,
			&e.EntryDate,
			&e.AccountCode,
			&e.Label,
			&e.Debit,
			&e.Credit,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan accounting entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounting entries: %w", err)
	}

	return entries, nil
}
