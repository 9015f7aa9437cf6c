package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pawly/internal/models/request_models"
	"pawly/internal/services"
	"pawly/pkg/utils"
)

type PetController struct {
	petService services.PetServiceInterface
}

func NewPetController(petService services.PetServiceInterface) *PetController {
	return &PetController{
		petService: petService,
	}
}

// CreatePet godoc
// @Summary Create a pet profile
// @Tags Pets
// @Accept json
// @Produce json
// @Param request body request_models.CreatePetRequest true "Pet payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pets [post]
func (pc *PetController) CreatePet(c *gin.Context) {
	var req request_models.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	pet, err := pc.petService.CreatePet(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pet, "Pet created successfully")
}

// ListPets godoc
// @Summary List the caller's pets
// @Tags Pets
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pets [get]
func (pc *PetController) ListPets(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	pets, err := pc.petService.ListPets(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pets, "Pets fetched successfully")
}

// GetPetById godoc
// @Summary Get one of the caller's pets
// @Tags Pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pets/{id} [get]
func (pc *PetController) GetPetById(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	pet, err := pc.petService.GetPetById(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pet, "Pet fetched successfully")
}

// UpdatePet godoc
// @Summary Update a pet profile
// @Tags Pets
// @Accept json
// @Produce json
// @Param id path string true "Pet ID"
// @Param request body request_models.UpdatePetRequest true "Pet payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pets/{id} [put]
func (pc *PetController) UpdatePet(c *gin.Context) {
	var req request_models.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	pet, err := pc.petService.UpdatePet(c.Request.Context(), accountID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pet, "Pet updated successfully")
}

// DeletePet godoc
// @Summary Delete a pet profile
// @Tags Pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pets/{id} [delete]
func (pc *PetController) DeletePet(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	if err := pc.petService.DeletePet(c.Request.Context(), accountID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Pet deleted successfully")
}
