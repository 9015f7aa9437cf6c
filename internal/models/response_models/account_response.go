package response_models

import "github.com/google/uuid"

type AccountResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type DeletionRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	RequestedAt int64     `json:"requested_at"`
	PurgeAfter  int64     `json:"purge_after"`
}
