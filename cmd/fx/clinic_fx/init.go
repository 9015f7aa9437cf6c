package clinic_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pawly/internal/repositories"
	"pawly/internal/services"
)

var Module = fx.Provide(
	provideClinicRepo, provideClinicService)

func provideClinicRepo(db *gorm.DB) repositories.ClinicRepository {
	return repositories.NewClinicRepository(db)
}

func provideClinicService(clinicRepo repositories.ClinicRepository, mailService services.IMailService) services.ClinicServiceInterface {
	return services.NewClinicService(clinicRepo, mailService)
}
