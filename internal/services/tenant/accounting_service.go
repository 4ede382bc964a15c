package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/database"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
	"github.com/locagest-api/internal/utils"
)

// Comptes du plan comptable utilisés pour une facture de location
const (
	accountClient  = "411"   // clients
	accountRevenue = "706"   // prestations de services
	accountVAT     = "44571" // TVA collectée
)

type AccountingService struct {
	db             repository.DB
	accountingRepo *tenantRepo.AccountingRepository
	logger         *zap.Logger
}

func NewAccountingService(db repository.DB, accountingRepo *tenantRepo.AccountingRepository, logger *zap.Logger) *AccountingService {
	return &AccountingService{
		db:             db,
		accountingRepo: accountingRepo,
		logger:         logger,
	}
}

// BuildInvoiceEntries construit les lignes d'écriture d'une facture
// de location : débit client pour le TTC, crédit prestations pour le
// HT, crédit TVA collectée pour la taxe. La pièce est toujours
// équilibrée au centime. Fonction pure.
func BuildInvoiceEntries(tenantID uuid.UUID, journalRef string, req *tenantModels.InvoiceEntriesRequest) []tenantModels.AccountingEntry {
	ht := round2(req.AmountHT)
	vat := round2(ht * req.VATRate / 100)
	ttc := round2(ht + vat)

	entries := []tenantModels.AccountingEntry{
		{
			TenantID:         tenantID,
			JournalReference: journalRef,
			EntryDate:        req.EntryDate,
			AccountCode:      accountClient,
			Label:            req.Label,
			Debit:            ttc,
		},
		{
			TenantID:         tenantID,
			JournalReference: journalRef,
			EntryDate:        req.EntryDate,
			AccountCode:      accountRevenue,
			Label:            req.Label,
			Credit:           ht,
		},
	}

	if vat > 0 {
		entries = append(entries, tenantModels.AccountingEntry{
			TenantID:         tenantID,
			JournalReference: journalRef,
			EntryDate:        req.EntryDate,
			AccountCode:      accountVAT,
			Label:            req.Label,
			Credit:           vat,
		})
	}

	return entries
}

// InvoiceEntriesResult rend la pièce générée avec son total en lettres
type InvoiceEntriesResult struct {
	JournalReference string                         `json:"journal_reference"`
	Entries          []tenantModels.AccountingEntry `json:"entries"`
	TotalTTC         float64                        `json:"total_ttc"`
	TotalInWords     string                         `json:"total_in_words"`
}

// GenerateInvoiceEntries génère et enregistre la pièce comptable
// d'une facture de location
func (s *AccountingService) GenerateInvoiceEntries(ctx context.Context, tenantID uuid.UUID, req *tenantModels.InvoiceEntriesRequest) (*InvoiceEntriesResult, error) {
	year := req.EntryDate.Year()

	// Numéro de pièce tiré sous verrou dans la transaction d'insertion,
	// pour que deux factures simultanées ne partagent pas la référence
	var (
		journalRef string
		entries    []tenantModels.AccountingEntry
	)
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		seq, err := s.accountingRepo.NextSequenceTx(ctx, tx, tenantID, year)
		if err != nil {
			return err
		}
		journalRef = utils.JournalReference(year, seq)
		entries = BuildInvoiceEntries(tenantID, journalRef, req)
		return s.accountingRepo.InsertEntriesTx(ctx, tx, entries)
	})
	if err != nil {
		return nil, err
	}

	ttc := entries[0].Debit

	s.logger.Info("invoice entries generated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("journal_reference", journalRef),
		zap.Float64("total_ttc", ttc),
	)

	return &InvoiceEntriesResult{
		JournalReference: journalRef,
		Entries:          entries,
		TotalTTC:         ttc,
		TotalInWords:     utils.MontantEnLettres(ttc),
	}, nil
}

// CheckBalance vérifie qu'une pièce est équilibrée au centime
func CheckBalance(entries []tenantModels.AccountingEntry) error {
	var debit, credit float64
	for _, e := range entries {
		debit += e.Debit
		credit += e.Credit
	}
	if round2(debit) != round2(credit) {
		return fmt.Errorf("pièce déséquilibrée : débit %.2f, crédit %.2f", debit, credit)
	}
	return nil
}
