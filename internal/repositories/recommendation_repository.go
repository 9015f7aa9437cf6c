package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawly/internal/models/db_models"
)

type RecommendationRepository interface {
	Insert(ctx context.Context, rec *db_models.Recommendation) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Recommendation, error)
	ListByPet(ctx context.Context, petID uuid.UUID, limit int) ([]db_models.Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Insert(ctx context.Context, rec *db_models.Recommendation) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recommendationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Recommendation, error) {
	var recs []db_models.Recommendation
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepository) ListByPet(ctx context.Context, petID uuid.UUID, limit int) ([]db_models.Recommendation, error) {
	var recs []db_models.Recommendation
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
