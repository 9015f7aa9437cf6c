package db_models

import "github.com/google/uuid"

// Recommendation is a persisted AI-generated artifact (meal plan or health
// report) for one pet.
type Recommendation struct {
	BaseModel
	AccountID uuid.UUID    `gorm:"index"`
	PetID     uuid.UUID    `gorm:"index"`
	Kind      ArtifactKind `gorm:"size:16;index"`

	Content string `gorm:"type:text"`
	Model   string // provider model that produced the content

	Pet Pet `gorm:"foreignKey:PetID"`
}
