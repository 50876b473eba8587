package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodbridge/internal/models/db_models"
)

type MenuRepository interface {
	Create(ctx context.Context, item *db_models.MenuItem) error
	FindById(ctx context.Context, id uint) (*db_models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uint, onlyAvailable bool) ([]db_models.MenuItem, error)
	ListAvailable(ctx context.Context) ([]db_models.MenuItem, error)
	ListByIds(ctx context.Context, ids []uint) ([]db_models.MenuItem, error)
	Update(ctx context.Context, item *db_models.MenuItem) error
	Delete(ctx context.Context, restaurantID, id uint) (bool, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (m *menuRepository) Create(ctx context.Context, item *db_models.MenuItem) error {
	return m.db.WithContext(ctx).Create(item).Error
}

func (m *menuRepository) FindById(ctx context.Context, id uint) (*db_models.MenuItem, error) {
	var item db_models.MenuItem
	err := m.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (m *menuRepository) ListByRestaurant(ctx context.Context, restaurantID uint, onlyAvailable bool) ([]db_models.MenuItem, error) {
	var items []db_models.MenuItem
	query := m.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	err := query.Order("id ASC").Find(&items).Error
	return items, err
}

func (m *menuRepository) ListAvailable(ctx context.Context) ([]db_models.MenuItem, error) {
	var items []db_models.MenuItem
	err := m.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (m *menuRepository) ListByIds(ctx context.Context, ids []uint) ([]db_models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []db_models.MenuItem
	err := m.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (m *menuRepository) Update(ctx context.Context, item *db_models.MenuItem) error {
	return m.db.WithContext(ctx).Save(item).Error
}

// Delete only removes the item when restaurantID owns it.
func (m *menuRepository) Delete(ctx context.Context, restaurantID, id uint) (bool, error) {
	res := m.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Delete(&db_models.MenuItem{})
	return res.RowsAffected > 0, res.Error
}
