package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pawly/internal/models/request_models"
	"pawly/internal/services"
	"pawly/pkg/utils"
)

// AdminController groups the privileged surfaces: approval toggling, the
// unfiltered clinic listing, and the deletion purge trigger.
type AdminController struct {
	clinicService  services.ClinicServiceInterface
	accountService services.AccountServiceInterface
}

func NewAdminController(
	clinicService services.ClinicServiceInterface,
	accountService services.AccountServiceInterface,
) *AdminController {
	return &AdminController{
		clinicService:  clinicService,
		accountService: accountService,
	}
}

// SetApproval godoc
// @Summary Approve or unapprove a clinic
// @Description Toggles administrator approval; verification is recomputed either way
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Clinic ID"
// @Param request body request_models.SetApprovalRequest true "Approval payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/clinics/{id}/approval [put]
func (ac *AdminController) SetApproval(c *gin.Context) {
	var req request_models.SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	clinic, err := ac.clinicService.SetAdminApproval(c.Request.Context(), c.Param("id"), req.Approved)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, clinic, "Approval updated")
}

// ListAllClinics godoc
// @Summary List clinics including unverified ones
// @Description Privileged listing with approval flags; requires the admin role
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/clinics [get]
func (ac *AdminController) ListAllClinics(c *gin.Context) {
	page, pageSize := paging(c)

	clinics, total, err := ac.clinicService.ListAllClinics(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"clinics":   clinics,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	}, "Clinics fetched successfully")
}

// PurgeDeletions godoc
// @Summary Purge accounts whose deletion grace window elapsed
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/deletions/purge [post]
func (ac *AdminController) PurgeDeletions(c *gin.Context) {
	purged, err := ac.accountService.PurgeDueDeletions(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"purged": purged}, "Purge completed")
}
