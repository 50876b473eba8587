package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodbridge/internal/models/db_models"
)

type RatingRepositoryInterface interface {
	Upsert(ctx context.Context, rating *db_models.Rating) error
	ListByRestaurant(ctx context.Context, restaurantID uint) ([]db_models.Rating, error)
	Summary(ctx context.Context, restaurantIDs []uint) (map[uint]RatingSummary, error)
}

type RatingSummary struct {
	RestaurantID uint    `gorm:"column:restaurant_id"`
	Average      float64 `gorm:"column:average"`
	Count        int64   `gorm:"column:count"`
}

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert keeps one row per (user, restaurant): a second rating by the same
// user replaces score and review.
func (r *RatingRepository) Upsert(ctx context.Context, rating *db_models.Rating) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "restaurant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
		}).
		Create(rating).Error
}

func (r *RatingRepository) ListByRestaurant(ctx context.Context, restaurantID uint) ([]db_models.Rating, error) {
	var ratings []db_models.Rating
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("updated_at DESC, id DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepository) Summary(ctx context.Context, restaurantIDs []uint) (map[uint]RatingSummary, error) {
	out := make(map[uint]RatingSummary, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return out, nil
	}

	var rows []RatingSummary
	err := r.db.WithContext(ctx).
		Model(&db_models.Rating{}).
		Select("restaurant_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("restaurant_id IN ?", restaurantIDs).
		Group("restaurant_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RestaurantID] = row
	}
	return out, nil
}
