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
	tenantHandlers "github.com/locagest-api/internal/handlers/tenant"
	"github.com/locagest-api/internal/middleware"
	"github.com/locagest-api/internal/repository"
	tenantRepo "github.com/locagest-api/internal/repository/tenant"
	tenantService "github.com/locagest-api/internal/services/tenant"
)

// Tenant API : application des agences de location. Parc, clients,
// contrats, assistance, infractions, comptabilité et changement de
// plan en libre-service. Chaque requête est bornée à l'agence portée
// par le jeton.
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

	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("failed to initialize redis client", zap.Error(err))
	}

	pool := dbManager.GetPool()

	userRepo := repository.NewUserRepository(pool)
	tenantsRepo := repository.NewTenantRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	subRepo := repository.NewSubscriptionRepository(pool)
	usageRepo := repository.NewUsageRepository(pool)

	vehicleRepo := tenantRepo.NewVehicleRepository(pool)
	clientRepo := tenantRepo.NewClientRepository(pool)
	contractRepo := tenantRepo.NewContractRepository(pool)
	assistanceRepo := tenantRepo.NewAssistanceRepository(pool)
	infractionRepo := tenantRepo.NewInfractionRepository(pool)
	accountingRepo := tenantRepo.NewAccountingRepository(pool)

	contractService := tenantService.NewContractService(pool, contractRepo, vehicleRepo, clientRepo, logger)
	accountingService := tenantService.NewAccountingService(pool, accountingRepo, logger)
	subscriptionService := tenantService.NewSubscriptionService(pool, tenantsRepo, planRepo, subRepo, usageRepo, logger)

	authHandler := tenantHandlers.NewAuthHandler(pool, userRepo, tenantsRepo, redisClient, cfg, logger)
	planHandler := tenantHandlers.NewPlanHandler(planRepo)
	vehicleHandler := tenantHandlers.NewVehicleHandler(vehicleRepo)
	clientHandler := tenantHandlers.NewClientHandler(clientRepo)
	contractHandler := tenantHandlers.NewContractHandler(contractService, contractRepo)
	assistanceHandler := tenantHandlers.NewAssistanceHandler(pool, assistanceRepo, logger)
	infractionHandler := tenantHandlers.NewInfractionHandler(infractionRepo)
	accountingHandler := tenantHandlers.NewAccountingHandler(accountingService, accountingRepo)
	subscriptionHandler := tenantHandlers.NewSubscriptionHandler(subscriptionService)

	router := setupRouter(cfg, tenantsRepo, planRepo, logger,
		authHandler, planHandler, vehicleHandler, clientHandler, contractHandler,
		assistanceHandler, infractionHandler, accountingHandler, subscriptionHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.TenantAPI.Port),
		Handler: router,
	}

	go func() {
		logger.Info("tenant api listening", zap.String("port", cfg.TenantAPI.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down tenant api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	dbManager.Close()
	redisClient.Close()

	logger.Info("tenant api exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func setupRouter(
	cfg *config.Config,
	tenantsRepo *repository.TenantRepository,
	planRepo *repository.PlanRepository,
	logger *zap.Logger,
	authHandler *tenantHandlers.AuthHandler,
	planHandler *tenantHandlers.PlanHandler,
	vehicleHandler *tenantHandlers.VehicleHandler,
	clientHandler *tenantHandlers.ClientHandler,
	contractHandler *tenantHandlers.ContractHandler,
	assistanceHandler *tenantHandlers.AssistanceHandler,
	infractionHandler *tenantHandlers.InfractionHandler,
	accountingHandler *tenantHandlers.AccountingHandler,
	subscriptionHandler *tenantHandlers.SubscriptionHandler,
) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "tenant-api"})
	})

	public := router.Group("/api/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		// Catalogue public : les agences consultent les plans avant
		// de se connecter
		public.GET("/plans", planHandler.ListPlans)
	}

	// Parcours d'abonnement : accessible dès l'inscription, avant que
	// l'agence ne soit active. Seules les agences suspendues ou
	// rejetées en sont exclues.
	onboarding := router.Group("/api/v1")
	onboarding.Use(middleware.AuthMiddleware(cfg.TenantAPI.JWTSecret))
	onboarding.Use(middleware.TenantOnboardingMiddleware(tenantsRepo))
	{
		onboarding.GET("/me", authHandler.Me)
		onboarding.GET("/subscription", subscriptionHandler.GetCurrent)
		onboarding.POST("/subscription/change", subscriptionHandler.ChangePlan)
		onboarding.POST("/subscriptions/:id/confirm-payment", subscriptionHandler.ConfirmPayment)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(cfg.TenantAPI.JWTSecret))
	protected.Use(middleware.TenantMiddleware(tenantsRepo, planRepo, logger))
	{
		protected.GET("/vehicles", vehicleHandler.ListVehicles)
		protected.GET("/vehicles/:id", vehicleHandler.GetVehicle)
		protected.POST("/vehicles", vehicleHandler.CreateVehicle)
		protected.PUT("/vehicles/:id", vehicleHandler.UpdateVehicle)
		protected.DELETE("/vehicles/:id", vehicleHandler.DeleteVehicle)

		protected.GET("/clients", clientHandler.ListClients)
		protected.GET("/clients/:id", clientHandler.GetClient)
		protected.POST("/clients", clientHandler.CreateClient)
		protected.PUT("/clients/:id", clientHandler.UpdateClient)
		protected.DELETE("/clients/:id", clientHandler.DeleteClient)

		protected.GET("/contracts", contractHandler.ListContracts)
		protected.GET("/contracts/:id", contractHandler.GetContract)
		protected.POST("/contracts", contractHandler.CreateContract)
		protected.POST("/contracts/:id/vehicle", contractHandler.ChangeVehicle)
		protected.GET("/contracts/:id/total", contractHandler.GetTotal)

		protected.GET("/infractions", infractionHandler.ListInfractions)
		protected.GET("/infractions/:id", infractionHandler.GetInfraction)
		protected.POST("/infractions", infractionHandler.CreateInfraction)
		protected.PUT("/infractions/:id/status", infractionHandler.UpdateInfractionStatus)

		protected.POST("/accounting/invoice-entries", accountingHandler.GenerateInvoiceEntries)
		protected.GET("/accounting/entries", accountingHandler.ListEntries)
	}

	assistance := protected.Group("/assistances")
	assistance.Use(middleware.RequireAssistanceModule())
	{
		assistance.GET("", assistanceHandler.ListAssistances)
		assistance.GET("/:id", assistanceHandler.GetAssistance)
		assistance.POST("", assistanceHandler.CreateAssistance)
		assistance.PUT("/:id/status", assistanceHandler.UpdateAssistanceStatus)
	}

	return router
}
