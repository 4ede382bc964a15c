package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/locagest-api/internal/models/shared"
)

// Vehicle représente un véhicule du parc de l'agence
type Vehicle struct {
	ID           uuid.UUID            `json:"id"`
	TenantID     uuid.UUID            `json:"tenant_id"`
	Registration string               `json:"registration"`
	Make         string               `json:"make"`
	Model        string               `json:"model"`
	DailyRate    float64              `json:"daily_rate"`
	Status       shared.VehicleStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Client représente un client de l'agence
type Client struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	LicenceNumber string    `json:"licence_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Contract représente un contrat de location
type Contract struct {
	ID        uuid.UUID             `json:"id"`
	TenantID  uuid.UUID             `json:"tenant_id"`
	Reference string                `json:"reference"`
	ClientID  uuid.UUID             `json:"client_id"`
	VehicleID uuid.UUID             `json:"vehicle_id"`
	StartDate time.Time             `json:"start_date"`
	EndDate   time.Time             `json:"end_date"`
	DailyRate float64               `json:"daily_rate"`
	Status    shared.ContractStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ContractSegment représente une période d'affectation d'un véhicule
// à un contrat. Le premier segment démarre à la date du contrat ;
// chaque changement de véhicule ouvre un nouveau segment.
type ContractSegment struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	ContractID uuid.UUID `json:"contract_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	StartsOn   time.Time `json:"starts_on"`
	DailyRate  float64   `json:"daily_rate"`
	CreatedAt  time.Time `json:"created_at"`
}

// Assistance représente un dossier d'assistance-assurance
type Assistance struct {
	ID               uuid.UUID               `json:"id"`
	TenantID         uuid.UUID               `json:"tenant_id"`
	DossierNumber    string                  `json:"dossier_number"`
	VehicleID        uuid.UUID               `json:"vehicle_id"`
	InsurerReference string                  `json:"insurer_reference,omitempty"`
	OpenedOn         time.Time               `json:"opened_on"`
	ClosedOn         *time.Time              `json:"closed_on,omitempty"`
	Status           shared.AssistanceStatus `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// Infraction représente une contravention reçue pour un véhicule
type Infraction struct {
	ID         uuid.UUID               `json:"id"`
	TenantID   uuid.UUID               `json:"tenant_id"`
	VehicleID  uuid.UUID               `json:"vehicle_id"`
	ContractID *uuid.UUID              `json:"contract_id,omitempty"`
	OccurredOn time.Time               `json:"occurred_on"`
	Amount     float64                 `json:"amount"`
	Nature     string                  `json:"nature"`
	Status     shared.InfractionStatus `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// AccountingEntry représente une ligne d'écriture comptable
type AccountingEntry struct {
	ID               uuid.UUID `json:"id"`
	TenantID         uuid.UUID `json:"tenant_id"`
	JournalReference string    `json:"journal_reference"`
	EntryDate        time.Time `json:"entry_date"`
	AccountCode      string    `json:"account_code"`
	Label            string    `json:"label"`
	Debit            float64   `json:"debit"`
	Credit           float64   `json:"credit"`
	CreatedAt        time.Time `json:"created_at"`
}

// User représente un utilisateur d'une agence
type User struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
