package pet_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pawly/internal/repositories"
	"pawly/internal/services"
)

var Module = fx.Provide(
	providePetRepo, providePetService)

func providePetRepo(db *gorm.DB) repositories.PetRepository {
	return repositories.NewPetRepository(db)
}

func providePetService(petRepo repositories.PetRepository) services.PetServiceInterface {
	return services.NewPetService(petRepo)
}
