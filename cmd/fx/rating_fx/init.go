package rating_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"foodbridge/internal/repositories"
	"foodbridge/internal/services"
)

var Module = fx.Provide(
	provideRatingRepo, provideRatingService,
)

func provideRatingRepo(db *gorm.DB) repositories.RatingRepositoryInterface {
	return repositories.NewRatingRepository(db)
}

func provideRatingService(ratingRepo repositories.RatingRepositoryInterface, accountRepo repositories.AccountRepository) services.RatingServiceInterface {
	return services.NewRatingService(ratingRepo, accountRepo)
}
