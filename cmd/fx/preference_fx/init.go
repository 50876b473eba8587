package preference_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"foodbridge/internal/repositories"
	"foodbridge/internal/services"
)

var Module = fx.Provide(providePreferenceRepo, providePreferenceService)

func providePreferenceRepo(db *gorm.DB) repositories.PreferenceRepository {
	return repositories.NewPreferenceRepository(db)
}

func providePreferenceService(prefRepo repositories.PreferenceRepository) services.PreferenceServiceInterface {
	return services.NewPreferenceService(prefRepo)
}
