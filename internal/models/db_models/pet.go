package db_models

import "github.com/google/uuid"

type Pet struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	Name      string
	Species   string // "dog", "cat", ...
	Breed     string
	BirthDate *int64 // unix seconds
	WeightKg  float64
	Allergies string
	Notes     string

	Account Account `gorm:"foreignKey:AccountID"`
}
