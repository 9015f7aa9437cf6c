package request_models

type RegisterClinicRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

type ConfirmClinicEmailRequest struct {
	ClinicID string `json:"clinic_id" binding:"required,uuid"`
	Token    string `json:"token" binding:"required"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SetApprovalRequest struct {
	Approved bool `json:"approved"`
}
