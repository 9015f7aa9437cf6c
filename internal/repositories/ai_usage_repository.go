package repositories

import (
	"context"
	"time"

	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawly/internal/models/db_models"
	"pawly/pkg/utils"
)

type AIUsageRepository interface {
	// FindForMonth returns nil when the account has no ledger row for the
	// month yet; callers treat that as zero usage.
	FindForMonth(ctx context.Context, accountID uuid.UUID, month time.Time) (*db_models.AIUsage, error)

	// ChargeOne materializes the (account, month) row on demand and applies a
	// guarded increment for kind. The guard and the increment are one SQL
	// statement, so two racing charges at limit-1 can never both land; the
	// loser gets a QuotaExceededError.
	ChargeOne(ctx context.Context, accountID uuid.UUID, month time.Time, kind db_models.ArtifactKind, limit int) error
}

type aiUsageRepository struct {
	db *gorm.DB
}

func NewAIUsageRepository(db *gorm.DB) AIUsageRepository {
	return &aiUsageRepository{db: db}
}

func (r *aiUsageRepository) FindForMonth(ctx context.Context, accountID uuid.UUID, month time.Time) (*db_models.AIUsage, error) {
	var usage db_models.AIUsage
	err := r.db.WithContext(ctx).
		First(&usage, "account_id = ? AND month = ?", accountID, month).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &usage, nil
}

func (r *aiUsageRepository) ChargeOne(ctx context.Context, accountID uuid.UUID, month time.Time, kind db_models.ArtifactKind, limit int) error {
	col := "meal_used"
	if kind == db_models.KindHealth {
		col = "health_used"
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureRow(tx, accountID, month); err != nil {
			return err
		}

		res := tx.Model(&db_models.AIUsage{}).
			Where("account_id = ? AND month = ? AND "+col+" < ?", accountID, month, limit).
			UpdateColumn(col, gorm.Expr(col+" + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &utils.QuotaExceededError{Kind: string(kind), Limit: limit}
		}

		return nil
	})
}

// ensureRow is the lazy materialization: first use in a month creates the row
// with zeroed counters. A concurrent create loses against the unique index
// and falls through to the existing row.
func (r *aiUsageRepository) ensureRow(tx *gorm.DB, accountID uuid.UUID, month time.Time) error {
	usage := db_models.AIUsage{
		AccountID: accountID,
		Month:     month,
	}

	err := tx.Where("account_id = ? AND month = ?", accountID, month).
		FirstOrCreate(&usage).Error
	if err != nil && isUniqueViolation(err) {
		return tx.First(&usage, "account_id = ? AND month = ?", accountID, month).Error
	}
	return err
}
