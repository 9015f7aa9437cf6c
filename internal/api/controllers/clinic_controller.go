package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pawly/internal/models/request_models"
	"pawly/internal/services"
	"pawly/pkg/utils"
)

type ClinicController struct {
	clinicService services.ClinicServiceInterface
}

func NewClinicController(clinicService services.ClinicServiceInterface) *ClinicController {
	return &ClinicController{
		clinicService: clinicService,
	}
}

// Register godoc
// @Summary Register a clinic
// @Description Creates an unverified clinic and sends a confirmation email
// @Tags Clinics
// @Accept json
// @Produce json
// @Param request body request_models.RegisterClinicRequest true "Clinic registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /clinics/register [post]
func (cc *ClinicController) Register(c *gin.Context) {
	var req request_models.RegisterClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	clinic, err := cc.clinicService.RegisterClinic(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": clinic.ID}, "Clinic registered, confirmation email sent")
}

// ConfirmEmail godoc
// @Summary Confirm a clinic email address
// @Description Redeems the emailed confirmation token (valid for 24 hours, single use)
// @Tags Clinics
// @Accept json
// @Produce json
// @Param request body request_models.ConfirmClinicEmailRequest true "Confirmation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /clinics/confirm-email [post]
func (cc *ClinicController) ConfirmEmail(c *gin.Context) {
	var req request_models.ConfirmClinicEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cc.clinicService.ConfirmEmail(c.Request.Context(), req.ClinicID, req.Token); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Email confirmed")
}

// ResendConfirmation godoc
// @Summary Resend the confirmation email
// @Tags Clinics
// @Accept json
// @Produce json
// @Param request body request_models.ResendConfirmationRequest true "Resend payload"
// @Success 200 {object} utils.APIResponse
// @Router /clinics/resend-confirmation [post]
func (cc *ClinicController) ResendConfirmation(c *gin.Context) {
	var req request_models.ResendConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cc.clinicService.ResendConfirmation(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the clinic exists, a confirmation link has been sent")
}

// GetClinicById godoc
// @Summary Get a clinic by id
// @Description Returns the clinic only if it is verified; anything else is a 404
// @Tags Clinics
// @Produce json
// @Param id path string true "Clinic ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /clinics/{id} [get]
func (cc *ClinicController) GetClinicById(c *gin.Context) {
	clinic, err := cc.clinicService.GetClinicById(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, clinic, "Clinic fetched successfully")
}

// ListClinics godoc
// @Summary List verified clinics
// @Tags Clinics
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /clinics [get]
func (cc *ClinicController) ListClinics(c *gin.Context) {
	page, pageSize := paging(c)

	result, err := cc.clinicService.ListClinics(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Clinics fetched successfully")
}

// SearchClinics godoc
// @Summary Search verified clinics
// @Description Searches name, address and description within the verified set
// @Tags Clinics
// @Produce json
// @Param q query string true "Search terms"
// @Success 200 {object} utils.APIResponse
// @Router /clinics/search [get]
func (cc *ClinicController) SearchClinics(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Missing search query")
		return
	}

	page, pageSize := paging(c)

	result, err := cc.clinicService.SearchClinics(c.Request.Context(), query, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Clinics fetched successfully")
}

// ResolveReferral godoc
// @Summary Resolve a referral code
// @Description Returns the clinic behind a referral code; codes of non-verified clinics resolve to 404
// @Tags Clinics
// @Produce json
// @Param code path string true "Referral code"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /referral/{code} [get]
func (cc *ClinicController) ResolveReferral(c *gin.Context) {
	clinic, err := cc.clinicService.ResolveReferralCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, clinic, "Clinic fetched successfully")
}

func paging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
