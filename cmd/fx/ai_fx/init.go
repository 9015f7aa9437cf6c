package ai_fx

import (
	"log"
	"os"
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"pawly/internal/repositories"
	"pawly/internal/services"
	"pawly/pkg/utils"
)

var Module = fx.Provide(
	provideGenerationClient,
	provideUsageRepo,
	provideRecommendationRepo,
	provideQuotaService,
	provideRecommendationService,
)

// provideGenerationClient builds the LLM client once at startup and fails fast
// when the configured provider cannot be constructed.
func provideGenerationClient() utils.GenerationClientInterface {

	provider := strings.ToLower(os.Getenv("AI_PROVIDER"))

	switch provider {
	case "openai":
		client, err := utils.NewOpenAIGenerationClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
		return client
	case "gemini", "":
		client, err := utils.NewGeminiGenerationClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		return client
	default:
		log.Fatalf("Unknown AI_PROVIDER: %q", provider)
		return nil
	}
}

func provideUsageRepo(db *gorm.DB) repositories.AIUsageRepository {
	return repositories.NewAIUsageRepository(db)
}

func provideRecommendationRepo(db *gorm.DB) repositories.RecommendationRepository {
	return repositories.NewRecommendationRepository(db)
}

func provideQuotaService(usageRepo repositories.AIUsageRepository, planRepo repositories.IPlanRepository) services.QuotaServiceInterface {
	return services.NewQuotaService(usageRepo, planRepo)
}

func provideRecommendationService(
	petRepo repositories.PetRepository,
	recRepo repositories.RecommendationRepository,
	quotaService services.QuotaServiceInterface,
	aiClient utils.GenerationClientInterface,
) services.RecommendationServiceInterface {
	return services.NewRecommendationService(petRepo, recRepo, quotaService, aiClient)
}
