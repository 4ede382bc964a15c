package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locagest-api/internal/middleware"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
	tenantService "github.com/locagest-api/internal/services/tenant"
)

type ContractHandler struct {
	contractService *tenantService.ContractService
	contractRepo    *tenantRepo.ContractRepository
}

func NewContractHandler(contractService *tenantService.ContractService, contractRepo *tenantRepo.ContractRepository) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		contractRepo:    contractRepo,
	}
}

// ListContracts liste les contrats, filtres optionnels en query
// GET /api/v1/contracts?status=&client_id=&vehicle_id=&from=&to=
func (h *ContractHandler) ListContracts(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	var filter tenantModels.ContractFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter", "details": err.Error()})
		return
	}

	contracts, err := h.contractRepo.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contracts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contracts": contracts, "total": len(contracts)})
}

// GetContract retourne un contrat avec ses segments d'affectation
// GET /api/v1/contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract ID"})
		return
	}

	contract, err := h.contractRepo.GetByID(c.Request.Context(), tenantID, contractID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
		return
	}

	segments, err := h.contractRepo.GetSegments(c.Request.Context(), tenantID, contractID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get contract segments", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contract": contract, "segments": segments})
}

// CreateContract ouvre un contrat de location
// POST /api/v1/contracts
func (h *ContractHandler) CreateContract(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	var req tenantModels.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), tenantID, &req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to create contract", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// ChangeVehicle remplace le véhicule d'un contrat à une date donnée
// POST /api/v1/contracts/:id/vehicle
func (h *ContractHandler) ChangeVehicle(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract ID"})
		return
	}

	var req tenantModels.ChangeVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.contractService.ChangeVehicle(c.Request.Context(), tenantID, contractID, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to change vehicle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vehicle changed"})
}

// GetTotal retourne le montant du contrat au prorata des segments,
// avec le total en toutes lettres
// GET /api/v1/contracts/:id/total
func (h *ContractHandler) GetTotal(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract ID"})
		return
	}

	total, words, err := h.contractService.ComputeTotal(c.Request.Context(), tenantID, contractID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "total_in_words": words})
}
