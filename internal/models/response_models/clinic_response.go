package response_models

import "github.com/google/uuid"

// ClinicResponse is the public view of a verified clinic. The referral code is
// present only while the clinic is verified.
type ClinicResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone,omitempty"`
	Description  string    `json:"description,omitempty"`
	ReferralCode string    `json:"referral_code,omitempty"`
}

// AdminClinicResponse exposes the approval flags for privileged listings.
type AdminClinicResponse struct {
	ClinicResponse
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
	AdminApproved  bool   `json:"admin_approved"`
	IsVerified     bool   `json:"is_verified"`
}

type ClinicListResponse struct {
	Clinics  []ClinicResponse `json:"clinics"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int64            `json:"total"`
}
