package tenant

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/cache"
	"github.com/locagest-api/internal/config"
	"github.com/locagest-api/internal/database"
	adminModels "github.com/locagest-api/internal/models/admin"
	tenantModels "github.com/locagest-api/internal/models/tenant"
	"github.com/locagest-api/internal/repository"
	"github.com/locagest-api/internal/utils"
)

// AuthHandler porte l'inscription et l'authentification des
// utilisateurs d'agence. Le slug de l'agence est résolu via Redis
// pour éviter une requête par login.
type AuthHandler struct {
	db         repository.DB
	userRepo   *repository.UserRepository
	tenantRepo *repository.TenantRepository
	redis      *cache.Client
	cfg        *config.Config
	logger     *zap.Logger
}

func NewAuthHandler(
	db repository.DB,
	userRepo *repository.UserRepository,
	tenantRepo *repository.TenantRepository,
	redisClient *cache.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		db:         db,
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		redis:      redisClient,
		cfg:        cfg,
		logger:     logger,
	}
}

func (h *AuthHandler) resolveTenantID(c *gin.Context, slug string) (uuid.UUID, bool) {
	ctx := c.Request.Context()

	if cached, err := h.redis.GetTenantID(ctx, slug); err == nil && cached != "" {
		if id, err := uuid.Parse(cached); err == nil {
			return id, true
		}
	}

	tenant, err := h.tenantRepo.GetTenantBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, false
	}

	if err := h.redis.SetTenantID(ctx, slug, tenant.ID.String(), 24*time.Hour); err != nil {
		h.logger.Warn("failed to cache tenant slug", zap.String("slug", slug), zap.Error(err))
	}

	return tenant.ID, true
}

// Register inscrit une agence et son premier utilisateur dans la même
// transaction. L'agence démarre en attente de choix de plan : elle
// n'accède au reste de l'API qu'une fois un plan approuvé.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req tenantModels.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	slug := utils.NormalizeSlug(req.AgencyName)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agency name"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	ctx := c.Request.Context()

	var (
		tenant *adminModels.Tenant
		user   *tenantModels.User
	)
	err = database.WithTx(ctx, h.db, func(tx pgx.Tx) error {
		created, err := h.tenantRepo.CreateTenantTx(ctx, tx, req.AgencyName, slug)
		if err != nil {
			return err
		}
		tenant = created

		owner, err := h.userRepo.CreateTx(ctx, tx, tenant.ID, utils.NormalizeEmail(req.Email), hash, req.Name)
		if err != nil {
			return err
		}
		user = owner
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "agency or user already registered", "details": err.Error()})
		return
	}

	if err := h.redis.SetTenantID(ctx, slug, tenant.ID.String(), 24*time.Hour); err != nil {
		h.logger.Warn("failed to cache tenant slug", zap.String("slug", slug), zap.Error(err))
	}

	token, err := utils.GenerateJWT(user.ID, tenant.ID.String(), h.cfg.TenantAPI.JWTSecret, h.cfg.JWT.ExpirationHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	h.logger.Info("tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", slug),
	)

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"tenant": gin.H{
			"id":     tenant.ID,
			"name":   tenant.Name,
			"slug":   tenant.Slug,
			"status": tenant.Status,
		},
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Login authentifie un utilisateur d'agence et délivre un jeton
// portant l'identité de l'agence
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req tenantModels.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID, ok := h.resolveTenantID(c, utils.NormalizeSlug(req.TenantSlug))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	user, err := h.userRepo.GetByEmail(c.Request.Context(), tenantID, utils.NormalizeEmail(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, tenantID.String(), h.cfg.TenantAPI.JWTSecret, h.cfg.JWT.ExpirationHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Me retourne le profil de l'utilisateur porté par le jeton
// GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"tenant_id": user.TenantID,
		"email":     user.Email,
		"name":      user.Name,
		"is_active": user.IsActive,
	})
}
