package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawly/internal/models/db_models"
	"pawly/internal/models/response_models"
	"pawly/internal/repositories"
	"pawly/pkg/utils"
)

type RecommendationServiceInterface interface {
	GenerateMealPlan(ctx context.Context, accountID uuid.UUID, petID string, operator bool) (response_models.RecommendationResponse, error)
	GenerateHealthReport(ctx context.Context, accountID uuid.UUID, petID string, operator bool) (response_models.RecommendationResponse, error)
	ListRecommendations(ctx context.Context, accountID uuid.UUID) ([]response_models.RecommendationResponse, error)
}

type RecommendationService struct {
	petRepo      repositories.PetRepository
	recRepo      repositories.RecommendationRepository
	quotaService QuotaServiceInterface
	aiClient     utils.GenerationClientInterface
}

func NewRecommendationService(
	petRepo repositories.PetRepository,
	recRepo repositories.RecommendationRepository,
	quotaService QuotaServiceInterface,
	aiClient utils.GenerationClientInterface,
) RecommendationServiceInterface {
	return &RecommendationService{
		petRepo:      petRepo,
		recRepo:      recRepo,
		quotaService: quotaService,
		aiClient:     aiClient,
	}
}

func (s *RecommendationService) GenerateMealPlan(ctx context.Context, accountID uuid.UUID, petID string, operator bool) (response_models.RecommendationResponse, error) {
	return s.generate(ctx, accountID, petID, db_models.KindMeal, operator)
}

func (s *RecommendationService) GenerateHealthReport(ctx context.Context, accountID uuid.UUID, petID string, operator bool) (response_models.RecommendationResponse, error) {
	return s.generate(ctx, accountID, petID, db_models.KindHealth, operator)
}

// generate runs the quota-gated flow: check just before the provider call,
// charge in a second short transaction only after the call succeeded. A failed
// generation never touches the ledger; a charge lost to a concurrent request
// discards the artifact and reports the quota error.
func (s *RecommendationService) generate(ctx context.Context, accountID uuid.UUID, petID string, kind db_models.ArtifactKind, operator bool) (response_models.RecommendationResponse, error) {

	pet, err := s.petRepo.FindById(ctx, petID)
	if err != nil {
		return response_models.RecommendationResponse{}, utils.ErrDatabaseError
	}
	if pet == nil || pet.AccountID != accountID {
		return response_models.RecommendationResponse{}, utils.ErrPetNotFound
	}

	if err := s.quotaService.Check(ctx, accountID, kind, operator); err != nil {
		return response_models.RecommendationResponse{}, err
	}

	systemPrompt, userPrompt := buildPrompt(kind, pet)

	content, err := s.aiClient.GenerateCompletion(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("Generation failed for pet %s: %v", pet.ID, err)
		return response_models.RecommendationResponse{}, utils.ErrGenerationFailed
	}

	if err := s.quotaService.Charge(ctx, accountID, kind, operator); err != nil {
		return response_models.RecommendationResponse{}, err
	}

	rec := &db_models.Recommendation{
		AccountID: accountID,
		PetID:     pet.ID,
		Kind:      kind,
		Content:   content,
		Model:     s.aiClient.ModelName(),
	}
	if err := s.recRepo.Insert(ctx, rec); err != nil {
		return response_models.RecommendationResponse{}, utils.ErrDatabaseError
	}

	return toRecommendationResponse(rec), nil
}

func (s *RecommendationService) ListRecommendations(ctx context.Context, accountID uuid.UUID) ([]response_models.RecommendationResponse, error) {

	recs, err := s.recRepo.ListByAccount(ctx, accountID, 50)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.RecommendationResponse, 0, len(recs))
	for i := range recs {
		result = append(result, toRecommendationResponse(&recs[i]))
	}

	return result, nil
}

func buildPrompt(kind db_models.ArtifactKind, pet *db_models.Pet) (string, string) {

	var profile strings.Builder
	fmt.Fprintf(&profile, "Name: %s\nSpecies: %s\n", pet.Name, pet.Species)
	if pet.Breed != "" {
		fmt.Fprintf(&profile, "Breed: %s\n", pet.Breed)
	}
	if pet.BirthDate != nil {
		years := time.Since(time.Unix(*pet.BirthDate, 0)).Hours() / 24 / 365
		fmt.Fprintf(&profile, "Age: %.1f years\n", years)
	}
	if pet.WeightKg > 0 {
		fmt.Fprintf(&profile, "Weight: %.1f kg\n", pet.WeightKg)
	}
	if pet.Allergies != "" {
		fmt.Fprintf(&profile, "Known allergies: %s\n", pet.Allergies)
	}
	if pet.Notes != "" {
		fmt.Fprintf(&profile, "Owner notes: %s\n", pet.Notes)
	}

	if kind == db_models.KindHealth {
		system := "You are a veterinary assistant. Write a short, practical health report " +
			"for the pet described by the owner. Flag anything that needs an in-person vet " +
			"visit. Plain text, no markdown headers."
		return system, fmt.Sprintf("Pet profile:\n%s\nWrite a general health and care report for this pet.", profile.String())
	}

	system := "You are a veterinary nutritionist. Produce a 7-day meal plan for the pet " +
		"described by the owner. Respect allergies strictly. Plain text, no markdown headers."
	return system, fmt.Sprintf("Pet profile:\n%s\nWrite a weekly meal plan with portion sizes.", profile.String())
}

func toRecommendationResponse(rec *db_models.Recommendation) response_models.RecommendationResponse {
	return response_models.RecommendationResponse{
		ID:        rec.ID,
		PetID:     rec.PetID,
		Kind:      string(rec.Kind),
		Content:   rec.Content,
		Model:     rec.Model,
		CreatedAt: rec.CreatedAt,
	}
}
