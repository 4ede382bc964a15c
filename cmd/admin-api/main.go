package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/locagest-api/internal/cache"
	"github.com/locagest-api/internal/config"
	"github.com/locagest-api/internal/database"
	adminHandlers "github.com/locagest-api/internal/handlers/admin"
	"github.com/locagest-api/internal/middleware"
	"github.com/locagest-api/internal/repository"
	adminService "github.com/locagest-api/internal/services/admin"
)

// Admin API : console d'administration. Authentification des
// opérateurs, gestion des plans, des agences et de la file
// d'approbation des abonnements.
func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gin.SetMode(cfg.App.GinMode)

	ctx := context.Background()

	dbManager := database.GetManager(cfg)
	if err := dbManager.InitPool(ctx); err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}

	if err := database.RunMigrations(cfg.Database.ConnectionString(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("failed to initialize redis client", zap.Error(err))
	}

	pool := dbManager.GetPool()

	sysUserRepo := repository.NewSysUserRepository(pool)
	tenantRepo := repository.NewTenantRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	subRepo := repository.NewSubscriptionRepository(pool)
	usageRepo := repository.NewUsageRepository(pool)

	planService := adminService.NewPlanService(planRepo, redisClient.Client, logger)
	tenantService := adminService.NewTenantService(pool, tenantRepo, planRepo, subRepo, usageRepo, logger)
	subscriptionService := adminService.NewSubscriptionService(pool, subRepo, tenantRepo, logger)

	authHandler := adminHandlers.NewAuthHandler(sysUserRepo, cfg)
	planHandler := adminHandlers.NewPlanHandler(planService)
	tenantHandler := adminHandlers.NewTenantHandler(tenantService)
	subscriptionHandler := adminHandlers.NewSubscriptionHandler(subscriptionService)

	router := setupRouter(cfg, authHandler, planHandler, tenantHandler, subscriptionHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.AdminAPI.Port),
		Handler: router,
	}

	go func() {
		logger.Info("admin api listening", zap.String("port", cfg.AdminAPI.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down admin api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	dbManager.Close()
	redisClient.Close()

	logger.Info("admin api exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func setupRouter(
	cfg *config.Config,
	authHandler *adminHandlers.AuthHandler,
	planHandler *adminHandlers.PlanHandler,
	tenantHandler *adminHandlers.TenantHandler,
	subscriptionHandler *adminHandlers.SubscriptionHandler,
) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "admin-api"})
	})

	public := router.Group("/api/v1/admin")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	protected := router.Group("/api/v1/admin")
	protected.Use(middleware.AuthMiddleware(cfg.AdminAPI.JWTSecret))
	{
		protected.GET("/plans", planHandler.GetAllPlans)
		protected.GET("/plans/:id", planHandler.GetPlanByID)
		protected.POST("/plans", planHandler.CreatePlan)
		protected.PUT("/plans/:id", planHandler.UpdatePlan)
		protected.DELETE("/plans/:id", planHandler.DeletePlan)

		protected.GET("/tenants", tenantHandler.ListTenants)
		protected.GET("/tenants/:id", tenantHandler.GetTenant)
		protected.GET("/tenants/:id/usage", tenantHandler.GetUsage)
		protected.POST("/tenants/:id/plan", tenantHandler.AssignPlan)
		protected.POST("/tenants/:id/suspend", tenantHandler.Suspend)
		protected.POST("/tenants/:id/reactivate", tenantHandler.Reactivate)

		protected.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
		protected.POST("/subscriptions/:id/approve", subscriptionHandler.Approve)
		protected.POST("/subscriptions/:id/reject", subscriptionHandler.Reject)
	}

	return router
}
