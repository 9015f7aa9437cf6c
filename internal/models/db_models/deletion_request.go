package db_models

import "github.com/google/uuid"

type DeletionStatus string

const (
	DeletionPending   DeletionStatus = "pending"
	DeletionCanceled  DeletionStatus = "canceled"
	DeletionCompleted DeletionStatus = "completed"
)

// DeletionRequest records an account-deletion ask with a grace window before
// the purge actually runs.
type DeletionRequest struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	Reason      string
	RequestedAt int64 // unix seconds
	PurgeAfter  int64 // unix seconds; purge eligible after this
	Status      DeletionStatus `gorm:"size:16;index"`

	Account Account `gorm:"foreignKey:AccountID"`
}
