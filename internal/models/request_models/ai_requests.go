package request_models

type GenerateRequest struct {
	PetID string `json:"pet_id" binding:"required,uuid"`
}
