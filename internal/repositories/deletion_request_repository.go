package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawly/internal/models/db_models"
)

type DeletionRequestRepository interface {
	Insert(ctx context.Context, req *db_models.DeletionRequest) error
	FindPendingByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.DeletionRequest, error)
	ListDue(ctx context.Context, now int64) ([]db_models.DeletionRequest, error)
	MarkStatus(ctx context.Context, id uuid.UUID, status db_models.DeletionStatus) error
}

type deletionRequestRepository struct {
	db *gorm.DB
}

func NewDeletionRequestRepository(db *gorm.DB) DeletionRequestRepository {
	return &deletionRequestRepository{db: db}
}

func (r *deletionRequestRepository) Insert(ctx context.Context, req *db_models.DeletionRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *deletionRequestRepository) FindPendingByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.DeletionRequest, error) {
	var req db_models.DeletionRequest
	err := r.db.WithContext(ctx).
		First(&req, "account_id = ? AND status = ?", accountID, db_models.DeletionPending).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &req, nil
}

func (r *deletionRequestRepository) ListDue(ctx context.Context, now int64) ([]db_models.DeletionRequest, error) {
	var reqs []db_models.DeletionRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND purge_after <= ?", db_models.DeletionPending, now).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *deletionRequestRepository) MarkStatus(ctx context.Context, id uuid.UUID, status db_models.DeletionStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.DeletionRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}
