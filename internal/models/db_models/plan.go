package db_models

import (
	"gorm.io/datatypes"
)

type BillingPeriod string

const (
	PeriodMonth BillingPeriod = "month"
	PeriodYear  BillingPeriod = "year"
)

type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"` // e.g., "free", "pro_monthly"
	Name        string
	Description *string
	Period      BillingPeriod `gorm:"size:16"`
	PriceMinor  int64         // 999 = $9.99
	Currency    string        `gorm:"size:3"`
	IsActive    bool          `gorm:"default:true"`

	MonthlyMealLimit   int  `gorm:"default:0"`
	MonthlyHealthLimit int  `gorm:"default:0"`
	UnlimitedMeals     bool `gorm:"default:false"`
	UnlimitedHealth    bool `gorm:"default:false"`

	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
