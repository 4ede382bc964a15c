package utils

import "fmt"

// ContractReference construit la référence d'un contrat à partir de
// l'année et d'un compteur par agence. Format : CT-2026-000042
func ContractReference(year, seq int) string {
	return fmt.Sprintf("CT-%d-%06d", year, seq)
}

// DossierNumber construit le numéro d'un dossier d'assistance.
// Format : AS-2026-000007
func DossierNumber(year, seq int) string {
	return fmt.Sprintf("AS-%d-%06d", year, seq)
}

// JournalReference construit la référence du journal des ventes pour
// une facture. Format : VE-2026-000113
func JournalReference(year, seq int) string {
	return fmt.Sprintf("VE-%d-%06d", year, seq)
}
