package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodbridge/internal/models/db_models"
)

type PreferenceRepository interface {
	FindByUser(ctx context.Context, userID uint) (*db_models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *db_models.UserPreferences) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (p *preferenceRepository) FindByUser(ctx context.Context, userID uint) (*db_models.UserPreferences, error) {
	var prefs db_models.UserPreferences
	err := p.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (p *preferenceRepository) Upsert(ctx context.Context, prefs *db_models.UserPreferences) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"favorite_foods", "dietary_restrictions", "average_quantity",
				"family_size", "prefers_ac", "updated_at",
			}),
		}).
		Create(prefs).Error
}
