package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locagest-api/internal/middleware"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
	tenantService "github.com/locagest-api/internal/services/tenant"
)

type AccountingHandler struct {
	accountingService *tenantService.AccountingService
	accountingRepo    *tenantRepo.AccountingRepository
}

func NewAccountingHandler(accountingService *tenantService.AccountingService, accountingRepo *tenantRepo.AccountingRepository) *AccountingHandler {
	return &AccountingHandler{
		accountingService: accountingService,
		accountingRepo:    accountingRepo,
	}
}

// GenerateInvoiceEntries génère la pièce comptable d'une facture de
// location : débit client TTC, crédit prestations HT, crédit TVA
// POST /api/v1/accounting/invoice-entries
func (h *AccountingHandler) GenerateInvoiceEntries(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	var req tenantModels.InvoiceEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	result, err := h.accountingService.GenerateInvoiceEntries(c.Request.Context(), tenantID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate invoice entries", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListEntries liste les écritures du journal de ventes de l'agence
// GET /api/v1/accounting/entries
func (h *AccountingHandler) ListEntries(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	entries, err := h.accountingRepo.List(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list accounting entries", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}
