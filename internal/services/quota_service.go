package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pawly/internal/models/db_models"
	"pawly/internal/models/response_models"
	"pawly/internal/repositories"
	"pawly/pkg/utils"
)

// Accounts without a plan fall back to these ceilings. A defaulting policy,
// not an error.
const (
	FallbackMealLimit   = 3
	FallbackHealthLimit = 1
)

// QuotaLimit is the resolved ceiling for one artifact kind.
type QuotaLimit struct {
	Unlimited bool
	Max       int
}

type QuotaServiceInterface interface {
	// Check fails with *utils.QuotaExceededError when the account has no slot
	// left for kind this month. Operators bypass the check entirely.
	Check(ctx context.Context, accountID uuid.UUID, kind db_models.ArtifactKind, operator bool) error

	// Charge records one consumed slot. Call it only after the generation
	// succeeded. Unlimited and operator usage is not tracked numerically.
	Charge(ctx context.Context, accountID uuid.UUID, kind db_models.ArtifactKind, operator bool) error

	Status(ctx context.Context, accountID uuid.UUID) (response_models.QuotaStatus, error)
}

type QuotaService struct {
	usageRepo repositories.AIUsageRepository
	planRepo  repositories.IPlanRepository
	now       func() time.Time
}

func NewQuotaService(usageRepo repositories.AIUsageRepository, planRepo repositories.IPlanRepository) QuotaServiceInterface {
	return &QuotaService{
		usageRepo: usageRepo,
		planRepo:  planRepo,
		now:       time.Now,
	}
}

func (s *QuotaService) Check(ctx context.Context, accountID uuid.UUID, kind db_models.ArtifactKind, operator bool) error {

	if operator {
		return nil
	}

	limit, err := s.resolveLimit(ctx, accountID, kind)
	if err != nil {
		return err
	}
	if limit.Unlimited {
		return nil
	}

	month := db_models.MonthStart(s.now())
	usage, err := s.usageRepo.FindForMonth(ctx, accountID, month)
	if err != nil {
		return utils.ErrDatabaseError
	}

	used := 0
	if usage != nil {
		used = usage.Used(kind)
	}

	if used >= limit.Max {
		return &utils.QuotaExceededError{Kind: string(kind), Limit: limit.Max}
	}

	return nil
}

func (s *QuotaService) Charge(ctx context.Context, accountID uuid.UUID, kind db_models.ArtifactKind, operator bool) error {

	if operator {
		return nil
	}

	limit, err := s.resolveLimit(ctx, accountID, kind)
	if err != nil {
		return err
	}
	if limit.Unlimited {
		return nil
	}

	month := db_models.MonthStart(s.now())
	return s.usageRepo.ChargeOne(ctx, accountID, month, kind, limit.Max)
}

func (s *QuotaService) Status(ctx context.Context, accountID uuid.UUID) (response_models.QuotaStatus, error) {

	mealLimit, err := s.resolveLimit(ctx, accountID, db_models.KindMeal)
	if err != nil {
		return response_models.QuotaStatus{}, err
	}
	healthLimit, err := s.resolveLimit(ctx, accountID, db_models.KindHealth)
	if err != nil {
		return response_models.QuotaStatus{}, err
	}

	month := db_models.MonthStart(s.now())
	usage, err := s.usageRepo.FindForMonth(ctx, accountID, month)
	if err != nil {
		return response_models.QuotaStatus{}, utils.ErrDatabaseError
	}

	status := response_models.QuotaStatus{
		Month:       month.Format("2006-01"),
		MealLimit:   limitValue(mealLimit),
		HealthLimit: limitValue(healthLimit),
	}
	if usage != nil {
		status.MealUsed = usage.MealUsed
		status.HealthUsed = usage.HealthUsed
	}

	return status, nil
}

func (s *QuotaService) resolveLimit(ctx context.Context, accountID uuid.UUID, kind db_models.ArtifactKind) (QuotaLimit, error) {

	plan, err := s.planRepo.GetActivePlanForAccount(ctx, accountID)
	if err != nil {
		return QuotaLimit{}, utils.ErrDatabaseError
	}

	if plan == nil {
		if kind == db_models.KindHealth {
			return QuotaLimit{Max: FallbackHealthLimit}, nil
		}
		return QuotaLimit{Max: FallbackMealLimit}, nil
	}

	if kind == db_models.KindHealth {
		return QuotaLimit{Unlimited: plan.UnlimitedHealth, Max: plan.MonthlyHealthLimit}, nil
	}
	return QuotaLimit{Unlimited: plan.UnlimitedMeals, Max: plan.MonthlyMealLimit}, nil
}

func limitValue(l QuotaLimit) int {
	if l.Unlimited {
		return -1
	}
	return l.Max
}
