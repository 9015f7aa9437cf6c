package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pawly/internal/models/request_models"
	"pawly/internal/services"
	"pawly/pkg/utils"
)

type AIController struct {
	recommendationService services.RecommendationServiceInterface
	quotaService          services.QuotaServiceInterface
}

func NewAIController(
	recommendationService services.RecommendationServiceInterface,
	quotaService services.QuotaServiceInterface,
) *AIController {
	return &AIController{
		recommendationService: recommendationService,
		quotaService:          quotaService,
	}
}

// GenerateMealPlan godoc
// @Summary Generate a meal plan for a pet
// @Description Gated by the monthly meal quota; a failed generation is not charged
// @Tags AI
// @Accept json
// @Produce json
// @Param request body request_models.GenerateRequest true "Generation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/meal-plan [post]
func (ai *AIController) GenerateMealPlan(c *gin.Context) {
	var req request_models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	rec, err := ai.recommendationService.GenerateMealPlan(c.Request.Context(), accountID, req.PetID, isOperator(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rec, "Meal plan generated")
}

// GenerateHealthReport godoc
// @Summary Generate a health report for a pet
// @Description Gated by the monthly health-report quota; a failed generation is not charged
// @Tags AI
// @Accept json
// @Produce json
// @Param request body request_models.GenerateRequest true "Generation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/health-report [post]
func (ai *AIController) GenerateHealthReport(c *gin.Context) {
	var req request_models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	rec, err := ai.recommendationService.GenerateHealthReport(c.Request.Context(), accountID, req.PetID, isOperator(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rec, "Health report generated")
}

// ListRecommendations godoc
// @Summary List the caller's generated artifacts
// @Tags AI
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/recommendations [get]
func (ai *AIController) ListRecommendations(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	recs, err := ai.recommendationService.ListRecommendations(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, recs, "Recommendations fetched successfully")
}

// QuotaStatus godoc
// @Summary Current-month quota consumption
// @Tags AI
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/quota [get]
func (ai *AIController) QuotaStatus(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	status, err := ai.quotaService.Status(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Quota fetched successfully")
}
