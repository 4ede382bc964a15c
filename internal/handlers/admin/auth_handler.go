package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locagest-api/internal/config"
	adminModels "github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/repository"
	"github.com/locagest-api/internal/utils"
)

// AuthHandler authentifie les opérateurs de la console
type AuthHandler struct {
	sysUserRepo *repository.SysUserRepository
	cfg         *config.Config
}

func NewAuthHandler(sysUserRepo *repository.SysUserRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		sysUserRepo: sysUserRepo,
		cfg:         cfg,
	}
}

// Login authentifie un opérateur et délivre un jeton console
// POST /api/v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req adminModels.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Email = utils.NormalizeEmail(req.Email)

	sysUser, err := h.sysUserRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, sysUser.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(sysUser.ID, "", h.cfg.AdminAPI.JWTSecret, h.cfg.JWT.ExpirationHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    sysUser.ID,
			"email": sysUser.Email,
			"name":  sysUser.Name,
		},
	})
}
