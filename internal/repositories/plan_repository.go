package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawly/internal/models/db_models"
)

type IPlanRepository interface {
	GetPlanInfoById(ctx context.Context, planID string) (*db_models.Plan, error)
	GetAllPlans(ctx context.Context) ([]db_models.Plan, error)

	// GetActivePlanForAccount resolves the plan behind the account's current
	// subscription. nil means no plan: the caller falls back to default
	// limits, it is not an error.
	GetActivePlanForAccount(ctx context.Context, accountID uuid.UUID) (*db_models.Plan, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p PlanRepository) GetPlanInfoById(ctx context.Context, planID string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p PlanRepository) GetAllPlans(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).Where("is_active = ?", true).Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (p PlanRepository) GetActivePlanForAccount(ctx context.Context, accountID uuid.UUID) (*db_models.Plan, error) {
	var sub db_models.Subscription
	err := p.db.WithContext(ctx).
		Preload("Plan").
		Where("account_id = ? AND status IN ? AND ends_at > ?",
			accountID,
			[]db_models.SubscriptionStatus{db_models.SubStatusActive, db_models.SubStatusTrialing},
			time.Now().Unix()).
		Order("ends_at DESC").
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub.Plan, nil
}
