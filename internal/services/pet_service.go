package services

import (
	"context"

	"github.com/google/uuid"

	"pawly/internal/models/db_models"
	"pawly/internal/models/request_models"
	"pawly/internal/models/response_models"
	"pawly/internal/repositories"
	"pawly/pkg/utils"
)

type PetServiceInterface interface {
	CreatePet(ctx context.Context, accountID uuid.UUID, request request_models.CreatePetRequest) (response_models.PetResponse, error)
	GetPetById(ctx context.Context, accountID uuid.UUID, petID string) (response_models.PetResponse, error)
	ListPets(ctx context.Context, accountID uuid.UUID) ([]response_models.PetResponse, error)
	UpdatePet(ctx context.Context, accountID uuid.UUID, petID string, request request_models.UpdatePetRequest) (response_models.PetResponse, error)
	DeletePet(ctx context.Context, accountID uuid.UUID, petID string) error
}

type PetService struct {
	petRepo repositories.PetRepository
}

func NewPetService(petRepo repositories.PetRepository) PetServiceInterface {
	return &PetService{petRepo: petRepo}
}

func (s *PetService) CreatePet(ctx context.Context, accountID uuid.UUID, request request_models.CreatePetRequest) (response_models.PetResponse, error) {

	pet := &db_models.Pet{
		AccountID: accountID,
		Name:      request.Name,
		Species:   request.Species,
		Breed:     request.Breed,
		BirthDate: request.BirthDate,
		WeightKg:  request.WeightKg,
		Allergies: request.Allergies,
		Notes:     request.Notes,
	}

	if err := s.petRepo.Insert(ctx, pet); err != nil {
		return response_models.PetResponse{}, utils.ErrDatabaseError
	}

	return toPetResponse(pet), nil
}

func (s *PetService) GetPetById(ctx context.Context, accountID uuid.UUID, petID string) (response_models.PetResponse, error) {

	pet, err := s.ownedPet(ctx, accountID, petID)
	if err != nil {
		return response_models.PetResponse{}, err
	}

	return toPetResponse(pet), nil
}

func (s *PetService) ListPets(ctx context.Context, accountID uuid.UUID) ([]response_models.PetResponse, error) {

	pets, err := s.petRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.PetResponse, 0, len(pets))
	for i := range pets {
		result = append(result, toPetResponse(&pets[i]))
	}

	return result, nil
}

func (s *PetService) UpdatePet(ctx context.Context, accountID uuid.UUID, petID string, request request_models.UpdatePetRequest) (response_models.PetResponse, error) {

	pet, err := s.ownedPet(ctx, accountID, petID)
	if err != nil {
		return response_models.PetResponse{}, err
	}

	if request.Name != "" {
		pet.Name = request.Name
	}
	if request.Breed != "" {
		pet.Breed = request.Breed
	}
	if request.BirthDate != nil {
		pet.BirthDate = request.BirthDate
	}
	if request.WeightKg > 0 {
		pet.WeightKg = request.WeightKg
	}
	pet.Allergies = request.Allergies
	pet.Notes = request.Notes

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return response_models.PetResponse{}, utils.ErrDatabaseError
	}

	return toPetResponse(pet), nil
}

func (s *PetService) DeletePet(ctx context.Context, accountID uuid.UUID, petID string) error {

	pet, err := s.ownedPet(ctx, accountID, petID)
	if err != nil {
		return err
	}

	if err := s.petRepo.Delete(ctx, pet.ID.String()); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

// ownedPet enforces that the pet exists and belongs to the caller; anything
// else is a not-found.
func (s *PetService) ownedPet(ctx context.Context, accountID uuid.UUID, petID string) (*db_models.Pet, error) {
	pet, err := s.petRepo.FindById(ctx, petID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pet == nil || pet.AccountID != accountID {
		return nil, utils.ErrPetNotFound
	}
	return pet, nil
}

func toPetResponse(pet *db_models.Pet) response_models.PetResponse {
	return response_models.PetResponse{
		ID:        pet.ID,
		Name:      pet.Name,
		Species:   pet.Species,
		Breed:     pet.Breed,
		BirthDate: pet.BirthDate,
		WeightKg:  pet.WeightKg,
		Allergies: pet.Allergies,
		Notes:     pet.Notes,
	}
}
