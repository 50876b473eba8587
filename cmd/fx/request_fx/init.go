package request_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodbridge/internal/repositories"
	"foodbridge/internal/services"
)

var Module = fx.Provide(provideRequestRepo, provideRequestService)

func provideRequestRepo(db *gorm.DB) repositories.RequestRepository {
	return repositories.NewRequestRepository(db)
}

func provideRequestService(
	requestRepo repositories.RequestRepository,
	accountRepo repositories.AccountRepository,
	mailService services.IMailService,
	logger *zap.Logger,
) services.RequestServiceInterface {
	return services.NewRequestService(requestRepo, accountRepo, mailService, logger.Named("requests"))
}
