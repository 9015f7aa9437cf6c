package services

import (
	"context"

	"pawly/internal/models/db_models"
	"pawly/internal/models/response_models"
	"pawly/internal/repositories"
	"pawly/pkg/utils"
)

type PlanServiceInterface interface {
	GetPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	GetPlanInfoById(ctx context.Context, planId string) (response_models.PlanResponse, error)
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
	}
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func (p *PlanService) GetPlans(ctx context.Context) ([]response_models.PlanResponse, error) {

	plans, err := p.planRepo.GetAllPlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toPlanResponse(&plans[i]))
	}

	return result, nil
}

func (p *PlanService) GetPlanInfoById(ctx context.Context, planId string) (response_models.PlanResponse, error) {

	plan, err := p.planRepo.GetPlanInfoById(ctx, planId)
	if err != nil {
		return response_models.PlanResponse{}, utils.ErrDatabaseError
	}

	if plan == nil {
		return response_models.PlanResponse{}, utils.ErrPlanNotFound
	}

	return toPlanResponse(plan), nil
}

func toPlanResponse(plan *db_models.Plan) response_models.PlanResponse {
	return response_models.PlanResponse{
		ID:                 plan.ID,
		Code:               plan.Code,
		Name:               plan.Name,
		Description:        plan.Description,
		Period:             string(plan.Period),
		PriceMinor:         plan.PriceMinor,
		Currency:           plan.Currency,
		MonthlyMealLimit:   plan.MonthlyMealLimit,
		MonthlyHealthLimit: plan.MonthlyHealthLimit,
		UnlimitedMeals:     plan.UnlimitedMeals,
		UnlimitedHealth:    plan.UnlimitedHealth,
		IsActive:           plan.IsActive,
	}
}
