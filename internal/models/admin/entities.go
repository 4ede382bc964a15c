package admin

import (
	"time"

	"github.com/google/uuid"
	"github.com/locagest-api/internal/models/shared"
)

// Plan représente un plan d'abonnement.
// Convention héritée du schéma : max_* = 0 signifie illimité.
type Plan struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	MaxVehicles      int       `json:"max_vehicles"`
	MaxUsers         int       `json:"max_users"`
	MaxContracts     int       `json:"max_contracts"`
	MaxClients       int       `json:"max_clients"`
	ModuleAssistance bool      `json:"module_assistance"`
	Price6Months     float64   `json:"price_6_months"`
	Price12Months    float64   `json:"price_12_months"`
	Discount6Months  float64   `json:"discount_6_months"`
	Discount12Months float64   `json:"discount_12_months"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Tenant représente une agence de location
type Tenant struct {
	ID                  uuid.UUID           `json:"id"`
	Name                string              `json:"name"`
	Slug                string              `json:"slug"`
	PlanID              *uuid.UUID          `json:"plan_id,omitempty"`
	Status              shared.TenantStatus `json:"status"`
	IsActive            bool                `json:"is_active"`
	OnboardingCompleted bool                `json:"onboarding_completed"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// Subscription lie une agence à un plan pour une durée donnée
type Subscription struct {
	ID             uuid.UUID                 `json:"id"`
	TenantID       uuid.UUID                 `json:"tenant_id"`
	PlanID         uuid.UUID                 `json:"plan_id"`
	DurationMonths shared.Duration           `json:"duration_months"`
	StartDate      *time.Time                `json:"start_date,omitempty"`
	EndDate        *time.Time                `json:"end_date,omitempty"`
	Status         shared.SubscriptionStatus `json:"status"`
	IsActive       bool                      `json:"is_active"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// SysUser représente un administrateur de la console
type SysUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlanResponse expose un plan avec ses prix calculés par durée
type PlanResponse struct {
	Plan
	FinalPrice6Months  float64 `json:"final_price_6_months"`
	FinalPrice12Months float64 `json:"final_price_12_months"`
}

// PlanListResponse est la réponse de listing des plans
type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
	Total int            `json:"total"`
}

// TenantUsageResponse expose la consommation courante d'une agence
type TenantUsageResponse struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	Vehicles  int       `json:"vehicles"`
	Users     int       `json:"users"`
	Contracts int       `json:"contracts"`
	Clients   int       `json:"clients"`
}

// AssignPlanResult décrit l'issue d'une affectation de plan par un admin
type AssignPlanResult struct {
	Assigned      bool     `json:"assigned"`
	Forced        bool     `json:"forced"`
	QuotaExceeded bool     `json:"quota_exceeded"`
	Violations    []string `json:"violations,omitempty"`
	Message       string   `json:"message"`
}
