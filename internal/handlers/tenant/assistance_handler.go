package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/database"
	"github.com/locagest-api/internal/middleware"
	"github.com/locagest-api/internal/models/shared"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
	"github.com/locagest-api/internal/utils"
)

// AssistanceHandler gère les dossiers d'assistance. Les routes sont
// gardées par RequireAssistanceModule : sans le module au plan,
// l'agence reçoit un 403.
type AssistanceHandler struct {
	db             repository.DB
	assistanceRepo *tenantRepo.AssistanceRepository
	logger         *zap.Logger
}

func NewAssistanceHandler(db repository.DB, assistanceRepo *tenantRepo.AssistanceRepository, logger *zap.Logger) *AssistanceHandler {
	return &AssistanceHandler{
		db:             db,
		assistanceRepo: assistanceRepo,
		logger:         logger,
	}
}

// ListAssistances liste les dossiers de l'agence
// GET /api/v1/assistances
func (h *AssistanceHandler) ListAssistances(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	dossiers, err := h.assistanceRepo.List(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assistance files", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assistances": dossiers, "total": len(dossiers)})
}

// GetAssistance retourne un dossier
// GET /api/v1/assistances/:id
func (h *AssistanceHandler) GetAssistance(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	dossierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assistance ID"})
		return
	}

	dossier, err := h.assistanceRepo.GetByID(c.Request.Context(), tenantID, dossierID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assistance file not found"})
		return
	}

	c.JSON(http.StatusOK, dossier)
}

// CreateAssistance ouvre un dossier avec un numéro généré par agence
// et par année
// POST /api/v1/assistances
func (h *AssistanceHandler) CreateAssistance(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	var req tenantModels.CreateAssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	year := req.OpenedOn.Year()

	// Numéro tiré sous verrou dans la transaction d'ouverture : deux
	// dossiers simultanés ne peuvent pas partager le même numéro
	var dossier *tenantModels.Assistance
	err := database.WithTx(ctx, h.db, func(tx pgx.Tx) error {
		seq, err := h.assistanceRepo.NextSequenceTx(ctx, tx, tenantID, year)
		if err != nil {
			return err
		}

		created, err := h.assistanceRepo.CreateTx(ctx, tx, tenantID, utils.DossierNumber(year, seq), &req)
		if err != nil {
			return err
		}
		dossier = created
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create assistance file", "details": err.Error()})
		return
	}

	h.logger.Info("assistance file opened",
		zap.String("tenant_id", tenantID.String()),
		zap.String("dossier_number", dossier.DossierNumber),
	)

	c.JSON(http.StatusCreated, dossier)
}

// UpdateAssistanceStatus fait avancer le dossier (open, in_review,
// closed) ; la clôture pose la date du jour
// PUT /api/v1/assistances/:id/status
func (h *AssistanceHandler) UpdateAssistanceStatus(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	dossierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assistance ID"})
		return
	}

	var req struct {
		Status shared.AssistanceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.assistanceRepo.UpdateStatus(c.Request.Context(), tenantID, dossierID, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to update assistance status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assistance status updated"})
}
