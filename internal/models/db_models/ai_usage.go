package db_models

import (
	"time"

	"github.com/google/uuid"
)

type ArtifactKind string

const (
	KindMeal   ArtifactKind = "meal"
	KindHealth ArtifactKind = "health"
)

// AIUsage is the quota ledger row: one per account per calendar month,
// materialized lazily on first generation in that month.
type AIUsage struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index:idx_usage_account_month,unique"`
	Month     time.Time `gorm:"type:date;index:idx_usage_account_month,unique"` // first day of month, UTC

	MealUsed   int `gorm:"default:0"`
	HealthUsed int `gorm:"default:0"`
}

func (u *AIUsage) Used(kind ArtifactKind) int {
	if kind == KindHealth {
		return u.HealthUsed
	}
	return u.MealUsed
}

// IsResetNeeded reports whether the row belongs to a past month. The ledger is
// keyed on the current month so this only matters for an eager sweep.
func (u *AIUsage) IsResetNeeded(now time.Time) bool {
	return u.Month.Before(MonthStart(now))
}

func (u *AIUsage) Reset(now time.Time) {
	u.Month = MonthStart(now)
	u.MealUsed = 0
	u.HealthUsed = 0
}

// MonthStart normalizes t to the first day of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
