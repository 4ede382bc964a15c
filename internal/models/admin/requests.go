package admin

import (
	"github.com/google/uuid"
	"github.com/locagest-api/internal/models/shared"
)

// LoginRequest représente les identifiants d'un admin de la console
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreatePlanRequest représente les données de création d'un plan
type CreatePlanRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	MaxVehicles      int     `json:"max_vehicles" binding:"min=0"`
	MaxUsers         int     `json:"max_users" binding:"min=0"`
	MaxContracts     int     `json:"max_contracts" binding:"min=0"`
	MaxClients       int     `json:"max_clients" binding:"min=0"`
	ModuleAssistance bool    `json:"module_assistance"`
	Price6Months     float64 `json:"price_6_months" binding:"min=0"`
	Price12Months    float64 `json:"price_12_months" binding:"min=0"`
	Discount6Months  float64 `json:"discount_6_months" binding:"min=0,max=100"`
	Discount12Months float64 `json:"discount_12_months" binding:"min=0,max=100"`
}

// UpdatePlanRequest reprend les champs modifiables d'un plan
type UpdatePlanRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	MaxVehicles      int     `json:"max_vehicles" binding:"min=0"`
	MaxUsers         int     `json:"max_users" binding:"min=0"`
	MaxContracts     int     `json:"max_contracts" binding:"min=0"`
	MaxClients       int     `json:"max_clients" binding:"min=0"`
	ModuleAssistance bool    `json:"module_assistance"`
	Price6Months     float64 `json:"price_6_months" binding:"min=0"`
	Price12Months    float64 `json:"price_12_months" binding:"min=0"`
	Discount6Months  float64 `json:"discount_6_months" binding:"min=0,max=100"`
	Discount12Months float64 `json:"discount_12_months" binding:"min=0,max=100"`
	IsActive         bool    `json:"is_active"`
}

// AssignPlanRequest représente une affectation de plan par un admin.
// Force passe outre les quotas dépassés ; réservé à la console.
type AssignPlanRequest struct {
	PlanID         uuid.UUID       `json:"plan_id" binding:"required"`
	DurationMonths shared.Duration `json:"duration_months" binding:"required"`
	Force          bool            `json:"force"`
}
