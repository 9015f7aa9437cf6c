package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var quotaErr *QuotaExceededError

	switch {
	case errors.As(err, &quotaErr):
		RespondError(c, http.StatusTooManyRequests, quotaErr.Error())
	case errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenExpired):
		// Same body for both so the response does not leak which case occurred.
		RespondError(c, http.StatusBadRequest, "Invalid or expired confirmation link")
	case errors.Is(err, ErrResetTokenInvalid):
		RespondError(c, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, ErrClinicNotFound):
		RespondError(c, http.StatusNotFound, "Clinic not found")
	case errors.Is(err, ErrPetNotFound):
		RespondError(c, http.StatusNotFound, "Pet not found")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrDeletionAlreadyRequested):
		RespondError(c, http.StatusConflict, "Deletion already requested")
	case errors.Is(err, ErrDeletionNotPending):
		RespondError(c, http.StatusNotFound, "No pending deletion request")
	case errors.Is(err, ErrGenerationFailed):
		// Safe to retry; quota was not charged.
		RespondError(c, http.StatusBadGateway, "Generation failed, please try again")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
