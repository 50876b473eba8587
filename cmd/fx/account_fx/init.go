package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodbridge/internal/repositories"
	"foodbridge/internal/services"
	mem "foodbridge/pkg/memcache"
	"foodbridge/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideAdminService)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	issuer *utils.TokenIssuer,
	memcache mem.TokenStore,
	mailService services.IMailService,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, issuer, memcache, mailService, logger.Named("account"))
}

func provideAdminService(
	accountRepo repositories.AccountRepository,
	issuer *utils.TokenIssuer,
	memcache mem.TokenStore,
	logger *zap.Logger,
) services.AdminServiceInterface {
	return services.NewAdminService(accountRepo, memcache, issuer.TTL(), logger.Named("admin"))
}
