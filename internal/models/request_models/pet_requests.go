package request_models

type CreatePetRequest struct {
	Name      string  `json:"name" binding:"required"`
	Species   string  `json:"species" binding:"required"`
	Breed     string  `json:"breed"`
	BirthDate *int64  `json:"birth_date"` // unix seconds
	WeightKg  float64 `json:"weight_kg"`
	Allergies string  `json:"allergies"`
	Notes     string  `json:"notes"`
}

type UpdatePetRequest struct {
	Name      string  `json:"name"`
	Breed     string  `json:"breed"`
	BirthDate *int64  `json:"birth_date"`
	WeightKg  float64 `json:"weight_kg"`
	Allergies string  `json:"allergies"`
	Notes     string  `json:"notes"`
}
