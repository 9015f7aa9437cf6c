package response_models

import "github.com/google/uuid"

type PetResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	BirthDate *int64    `json:"birth_date,omitempty"`
	WeightKg  float64   `json:"weight_kg,omitempty"`
	Allergies string    `json:"allergies,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}
