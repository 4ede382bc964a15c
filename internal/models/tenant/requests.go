package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/locagest-api/internal/models/shared"
)

// LoginRequest représente les identifiants d'un utilisateur d'agence
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

// RegisterRequest représente l'inscription d'une agence avec son
// premier utilisateur. L'agence démarre sans plan, en attente de choix.
type RegisterRequest struct {
	AgencyName string `json:"agency_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
}

// CreateVehicleRequest représente l'ajout d'un véhicule au parc
type CreateVehicleRequest struct {
	Registration string  `json:"registration" binding:"required"`
	Make         string  `json:"make" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	DailyRate    float64 `json:"daily_rate" binding:"min=0"`
}

// UpdateVehicleRequest représente la mise à jour d'un véhicule
type UpdateVehicleRequest struct {
	Registration string               `json:"registration" binding:"required"`
	Make         string               `json:"make" binding:"required"`
	Model        string               `json:"model" binding:"required"`
	DailyRate    float64              `json:"daily_rate" binding:"min=0"`
	Status       shared.VehicleStatus `json:"status" binding:"required"`
}

// CreateClientRequest représente la création d'une fiche client
type CreateClientRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	LicenceNumber string `json:"licence_number"`
}

// CreateContractRequest représente l'ouverture d'un contrat de location
type CreateContractRequest struct {
	ClientID  uuid.UUID `json:"client_id" binding:"required"`
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	DailyRate float64   `json:"daily_rate" binding:"min=0"`
}

// ChangeVehicleRequest représente un changement de véhicule en cours
// de contrat, à une date donnée
type ChangeVehicleRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	StartsOn  time.Time `json:"starts_on" binding:"required"`
	DailyRate float64   `json:"daily_rate" binding:"min=0"`
}

// ContractFilter porte les filtres optionnels du listing des contrats
type ContractFilter struct {
	Status    string     `form:"status"`
	ClientID  *uuid.UUID `form:"client_id"`
	VehicleID *uuid.UUID `form:"vehicle_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// CreateAssistanceRequest représente l'ouverture d'un dossier d'assistance
type CreateAssistanceRequest struct {
	VehicleID        uuid.UUID `json:"vehicle_id" binding:"required"`
	InsurerReference string    `json:"insurer_reference"`
	OpenedOn         time.Time `json:"opened_on" binding:"required"`
}

// CreateInfractionRequest représente l'enregistrement d'une infraction
type CreateInfractionRequest struct {
	VehicleID  uuid.UUID  `json:"vehicle_id" binding:"required"`
	ContractID *uuid.UUID `json:"contract_id"`
	OccurredOn time.Time  `json:"occurred_on" binding:"required"`
	Amount     float64    `json:"amount" binding:"min=0"`
	Nature     string     `json:"nature" binding:"required"`
}

// InvoiceEntriesRequest demande la génération des écritures d'une facture
type InvoiceEntriesRequest struct {
	ContractID uuid.UUID `json:"contract_id" binding:"required"`
	EntryDate  time.Time `json:"entry_date" binding:"required"`
	AmountHT   float64   `json:"amount_ht" binding:"required,min=0"`
	VATRate    float64   `json:"vat_rate" binding:"min=0,max=100"`
	Label      string    `json:"label" binding:"required"`
}

// ChangePlanRequest représente un changement de plan en libre-service.
// Volontairement sans champ force : le dépassement de quota bloque toujours.
type ChangePlanRequest struct {
	PlanID         uuid.UUID       `json:"plan_id" binding:"required"`
	DurationMonths shared.Duration `json:"duration_months" binding:"required"`
}
