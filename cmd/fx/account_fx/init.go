package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pawly/internal/repositories"
	"pawly/internal/services"
	mem "pawly/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountRepo, provideDeletionRepo, provideResetTokens, provideAccountService)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideDeletionRepo(db *gorm.DB) repositories.DeletionRequestRepository {
	return repositories.NewDeletionRequestRepository(db)
}

func provideResetTokens() mem.ResetTokenStore {
	return mem.NewResetTokens()
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	deletionRepo repositories.DeletionRequestRepository,
	mailService services.IMailService,
	resetTokens mem.ResetTokenStore,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, deletionRepo, mailService, resetTokens)
}
