package response_models

import "github.com/google/uuid"

type RecommendationResponse struct {
	ID        uuid.UUID `json:"id"`
	PetID     uuid.UUID `json:"pet_id"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	Model     string    `json:"model,omitempty"`
	CreatedAt int64     `json:"created_at"`
}

// QuotaStatus reports per-kind consumption for the current month. Limit is -1
// when the plan marks the kind unlimited.
type QuotaStatus struct {
	Month       string `json:"month"` // "2006-01"
	MealUsed    int    `json:"meal_used"`
	MealLimit   int    `json:"meal_limit"`
	HealthUsed  int    `json:"health_used"`
	HealthLimit int    `json:"health_limit"`
}
