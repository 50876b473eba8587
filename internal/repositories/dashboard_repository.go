package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "foodbridge/internal/models/db_models"
)

type DashboardRepository interface {
	CountAccountsByRole(ctx context.Context) (map[dbm.Role]int64, error)
	CountMenuItems(ctx context.Context) (int64, error)
	CountRatings(ctx context.Context) (int64, error)
	CountRequestsByStatus(ctx context.Context, kind dbm.RequestKind) (map[dbm.RequestStatus]int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type roleCount struct {
	Role  dbm.Role `gorm:"column:role"`
	Count int64    `gorm:"column:count"`
}

type statusCount struct {
	Status dbm.RequestStatus `gorm:"column:status"`
	Count  int64             `gorm:"column:count"`
}

// ---------- Counts ----------
func (r *dashboardRepository) CountAccountsByRole(ctx context.Context) (map[dbm.Role]int64, error) {
	var rows []roleCount
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[dbm.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *dashboardRepository) CountMenuItems(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.MenuItem{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountRatings(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Rating{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountRequestsByStatus(ctx context.Context, kind dbm.RequestKind) (map[dbm.RequestStatus]int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var rows []statusCount
	err = r.db.WithContext(ctx).
		Model(table.model()).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[dbm.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
