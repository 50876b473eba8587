package menu_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodbridge/internal/repositories"
	"foodbridge/internal/services"
)

var Module = fx.Provide(
	provideMenuRepo, provideMenuService)

func provideMenuRepo(db *gorm.DB) repositories.MenuRepository {
	return repositories.NewMenuRepository(db)
}

func provideMenuService(
	menuRepo repositories.MenuRepository,
	accountRepo repositories.AccountRepository,
	index services.MenuIndexer,
	logger *zap.Logger,
) services.MenuServiceInterface {
	return services.NewMenuService(menuRepo, accountRepo, index, logger.Named("menu"))
}
