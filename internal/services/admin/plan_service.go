package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	adminModels "github.com/locagest-api/internal/models/admin"
	"github.com/locagest-api/internal/models/shared"
	"github.com/locagest-api/internal/pricing"
	"github.com/locagest-api/internal/repository"
)

const (
	// Clé de cache de la liste des plans
	plansListCacheKey = "plans:list:all"
	// Les plans changent rarement : 24 heures de TTL
	plansCacheTTL = 24 * time.Hour
)

type PlanService struct {
	planRepo *repository.PlanRepository
	redis    *redis.Client
	logger   *zap.Logger
}

func NewPlanService(planRepo *repository.PlanRepository, redisClient *redis.Client, logger *zap.Logger) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		redis:    redisClient,
		logger:   logger,
	}
}

func toPlanResponse(plan adminModels.Plan) adminModels.PlanResponse {
	p := pricing.PlanPricing{
		Price6Months:     plan.Price6Months,
		Price12Months:    plan.Price12Months,
		Discount6Months:  plan.Discount6Months,
		Discount12Months: plan.Discount12Months,
	}
	six, _ := p.FinalPrice(shared.DurationSixMonths)
	twelve, _ := p.FinalPrice(shared.DurationTwelveMonths)

	return adminModels.PlanResponse{
		Plan:               plan,
		FinalPrice6Months:  six,
		FinalPrice12Months: twelve,
	}
}

// GetAllPlansWithCache retourne tous les plans avec leurs prix
// calculés, via le cache Redis
func (s *PlanService) GetAllPlansWithCache(ctx context.Context) ([]adminModels.PlanResponse, error) {
	// Tenter le cache d'abord
	cached, err := s.redis.Get(ctx, plansListCacheKey).Result()
	if err == nil {
		var plans []adminModels.PlanResponse
		if err := json.Unmarshal([]byte(cached), &plans); err == nil {
			return plans, nil
		}
		// Désérialisation impossible : on retombe sur la base
	}

	plans, err := s.planRepo.GetAllPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans from database: %w", err)
	}

	planResponses := make([]adminModels.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		planResponses = append(planResponses, toPlanResponse(plan))
	}

	if jsonData, err := json.Marshal(planResponses); err == nil {
		s.redis.Set(ctx, plansListCacheKey, jsonData, plansCacheTTL)
	}

	return planResponses, nil
}

// GetPlanByIDWithCache retourne un plan avec ses prix calculés
func (s *PlanService) GetPlanByIDWithCache(ctx context.Context, planID uuid.UUID) (*adminModels.PlanResponse, error) {
	cacheKey := fmt.Sprintf("plans:id:%s", planID.String())

	cached, err := s.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var planResponse adminModels.PlanResponse
		if err := json.Unmarshal([]byte(cached), &planResponse); err == nil {
			return &planResponse, nil
		}
	}

	plan, err := s.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	planResponse := toPlanResponse(*plan)

	if jsonData, err := json.Marshal(planResponse); err == nil {
		s.redis.Set(ctx, cacheKey, jsonData, plansCacheTTL)
	}

	return &planResponse, nil
}

// InvalidatePlansCache invalide tout le cache des plans.
// À appeler après toute création, mise à jour ou suppression.
func (s *PlanService) InvalidatePlansCache(ctx context.Context) error {
	if err := s.redis.Del(ctx, plansListCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plans list cache: %w", err)
	}

	iter := s.redis.Scan(ctx, 0, "plans:id:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			continue
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan plan caches: %w", err)
	}

	return nil
}

// InvalidatePlanCache invalide le cache d'un plan précis
func (s *PlanService) InvalidatePlanCache(ctx context.Context, planID uuid.UUID) error {
	cacheKey := fmt.Sprintf("plans:id:%s", planID.String())

	if err := s.redis.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan cache: %w", err)
	}

	if err := s.redis.Del(ctx, plansListCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plans list cache: %w", err)
	}

	return nil
}

// CreatePlan crée un plan et invalide le cache
func (s *PlanService) CreatePlan(ctx context.Context, req adminModels.CreatePlanRequest) (*adminModels.Plan, error) {
	plan, err := s.planRepo.CreatePlan(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.InvalidatePlansCache(ctx); err != nil {
		s.logger.Warn("failed to invalidate plans cache", zap.Error(err))
	}

	return plan, nil
}

// UpdatePlan met à jour un plan et invalide le cache
func (s *PlanService) UpdatePlan(ctx context.Context, planID uuid.UUID, req adminModels.UpdatePlanRequest) (*adminModels.Plan, error) {
	plan, err := s.planRepo.UpdatePlan(ctx, planID, req)
	if err != nil {
		return nil, err
	}

	if err := s.InvalidatePlanCache(ctx, planID); err != nil {
		s.logger.Warn("failed to invalidate plan cache", zap.Error(err), zap.String("plan_id", planID.String()))
	}

	return plan, nil
}

// DeletePlan supprime un plan et invalide le cache
func (s *PlanService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	if err := s.planRepo.DeletePlan(ctx, planID); err != nil {
		return err
	}

	if err := s.InvalidatePlanCache(ctx, planID); err != nil {
		s.logger.Warn("failed to invalidate plan cache", zap.Error(err), zap.String("plan_id", planID.String()))
	}

	return nil
}
