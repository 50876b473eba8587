package services

import (
	"context"
	"strings"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/models/response_models"
	"foodbridge/internal/repositories"
	"foodbridge/pkg/utils"
)

type RatingServiceInterface interface {
	RateRestaurant(ctx context.Context, userID uint, request request_models.RateRestaurantRequest) (*db_models.Rating, error)
	GetRatings(ctx context.Context, restaurantID uint) (*response_models.RatingsResponse, error)
	ListRestaurants(ctx context.Context, page, pageSize int) ([]response_models.RestaurantSummary, int64, error)
}

type RatingService struct {
	ratingRepo  repositories.RatingRepositoryInterface
	accountRepo repositories.AccountRepository
}

func NewRatingService(ratingRepo repositories.RatingRepositoryInterface, accountRepo repositories.AccountRepository) RatingServiceInterface {
	return &RatingService{ratingRepo: ratingRepo, accountRepo: accountRepo}
}

func (s *RatingService) findRestaurant(ctx context.Context, id uint) (*db_models.Account, error) {
	restaurant, err := s.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if restaurant == nil || restaurant.Role != db_models.RoleRestaurant {
		return nil, utils.ErrAccountNotFound
	}
	return restaurant, nil
}

// RateRestaurant keeps one rating per user and restaurant; rating again
// replaces the previous score and review.
func (s *RatingService) RateRestaurant(ctx context.Context, userID uint, request request_models.RateRestaurantRequest) (*db_models.Rating, error) {
	if request.Rating < 1 || request.Rating > 5 {
		return nil, utils.NewValidationError("Rating must be between 1 and 5")
	}
	if _, err := s.findRestaurant(ctx, request.RestaurantID); err != nil {
		return nil, err
	}

	rating := &db_models.Rating{
		UserID:       userID,
		RestaurantID: request.RestaurantID,
		Rating:       request.Rating,
		Review:       strings.TrimSpace(request.Review),
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, dbError(err)
	}
	return rating, nil
}

func (s *RatingService) GetRatings(ctx context.Context, restaurantID uint) (*response_models.RatingsResponse, error) {
	if _, err := s.findRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, dbError(err)
	}
	summary, err := s.ratingRepo.Summary(ctx, []uint{restaurantID})
	if err != nil {
		return nil, dbError(err)
	}

	sum := summary[restaurantID]
	return &response_models.RatingsResponse{
		RestaurantID: restaurantID,
		Average:      sum.Average,
		Count:        sum.Count,
		Ratings:      ratings,
	}, nil
}

func (s *RatingService) ListRestaurants(ctx context.Context, page, pageSize int) ([]response_models.RestaurantSummary, int64, error) {
	if page <= 0 {
		return nil, 0, utils.ErrInvalidPage
	}
	if pageSize <= 0 || pageSize > 100 {
		return nil, 0, utils.ErrInvalidPageSize
	}

	restaurants, total, err := s.accountRepo.List(ctx, db_models.RoleRestaurant, page, pageSize)
	if err != nil {
		return nil, 0, dbError(err)
	}

	ids := make([]uint, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.ID
	}
	summary, err := s.ratingRepo.Summary(ctx, ids)
	if err != nil {
		return nil, 0, dbError(err)
	}

	out := make([]response_models.RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, response_models.RestaurantSummary{
			ID:            r.ID,
			Name:          r.Name,
			Address:       r.Address,
			AverageRating: summary[r.ID].Average,
			RatingCount:   summary[r.ID].Count,
		})
	}
	return out, total, nil
}
