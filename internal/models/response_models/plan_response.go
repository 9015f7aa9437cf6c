package response_models

import "github.com/google/uuid"

type PlanResponse struct {
	ID                 uuid.UUID `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	Description        *string   `json:"description,omitempty"`
	Period             string    `json:"period"`
	PriceMinor         int64     `json:"price_minor"`
	Currency           string    `json:"currency"`
	MonthlyMealLimit   int       `json:"monthly_meal_limit"`
	MonthlyHealthLimit int       `json:"monthly_health_limit"`
	UnlimitedMeals     bool      `json:"unlimited_meals"`
	UnlimitedHealth    bool      `json:"unlimited_health"`
	IsActive           bool      `json:"is_active"`
}
