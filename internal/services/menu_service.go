package services

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/repositories"
	"foodbridge/pkg/utils"
)

type MenuServiceInterface interface {
	CreateItem(ctx context.Context, restaurantID uint, request request_models.MenuItemRequest) (*db_models.MenuItem, error)
	ListOwn(ctx context.Context, restaurantID uint) ([]db_models.MenuItem, error)
	ListRestaurantMenu(ctx context.Context, callerID, restaurantID uint) ([]db_models.MenuItem, error)
	UpdateItem(ctx context.Context, restaurantID, id uint, request request_models.MenuItemRequest) (*db_models.MenuItem, error)
	DeleteItem(ctx context.Context, restaurantID, id uint) error
}

type MenuService struct {
	menuRepo    repositories.MenuRepository
	accountRepo repositories.AccountRepository
	index       MenuIndexer
	logger      *zap.Logger
}

// MenuIndexer keeps search data in step with menu edits. A nil indexer is
// allowed.
type MenuIndexer interface {
	Refresh(ctx context.Context, item *db_models.MenuItem) error
	Remove(ctx context.Context, id uint) error
}

func NewMenuService(
	menuRepo repositories.MenuRepository,
	accountRepo repositories.AccountRepository,
	index MenuIndexer,
	logger *zap.Logger,
) MenuServiceInterface {
	return &MenuService{
		menuRepo:    menuRepo,
		accountRepo: accountRepo,
		index:       index,
		logger:      logger,
	}
}

func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

func applyMenuRequest(item *db_models.MenuItem, request request_models.MenuItemRequest) {
	item.Name = strings.TrimSpace(request.Name)
	item.Description = strings.TrimSpace(request.Description)
	item.Price = roundPrice(request.Price)
	item.IsVegetarian = request.IsVegetarian
	item.IsVegan = request.IsVegan
	item.CarbonFootprint = request.CarbonFootprint
	item.IsAvailable = true
	if request.IsAvailable != nil {
		item.IsAvailable = *request.IsAvailable
	}
}

func (s *MenuService) CreateItem(ctx context.Context, restaurantID uint, request request_models.MenuItemRequest) (*db_models.MenuItem, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, utils.NewValidationError("Name is required")
	}

	// the session may outlive the account or its role
	owner, err := s.accountRepo.FindById(ctx, restaurantID)
	if err != nil {
		return nil, dbError(err)
	}
	if owner == nil || !owner.Role.Can(db_models.CapOwnMenu) {
		return nil, utils.ErrUnauthorized
	}

	item := &db_models.MenuItem{RestaurantID: restaurantID}
	applyMenuRequest(item, request)

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, dbError(err)
	}
	s.refresh(ctx, item)
	return item, nil
}

func (s *MenuService) ListOwn(ctx context.Context, restaurantID uint) ([]db_models.MenuItem, error) {
	items, err := s.menuRepo.ListByRestaurant(ctx, restaurantID, false)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

// ListRestaurantMenu shows available items only, unless the caller owns the
// menu.
func (s *MenuService) ListRestaurantMenu(ctx context.Context, callerID, restaurantID uint) ([]db_models.MenuItem, error) {
	restaurant, err := s.accountRepo.FindById(ctx, restaurantID)
	if err != nil {
		return nil, dbError(err)
	}
	if restaurant == nil || !restaurant.Role.Can(db_models.CapOwnMenu) {
		return nil, utils.ErrAccountNotFound
	}

	items, err := s.menuRepo.ListByRestaurant(ctx, restaurantID, callerID != restaurantID)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, restaurantID, id uint, request request_models.MenuItemRequest) (*db_models.MenuItem, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, utils.NewValidationError("Name is required")
	}

	item, err := s.menuRepo.FindById(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	// someone else's item looks the same as a missing one
	if item == nil || item.RestaurantID != restaurantID {
		return nil, utils.ErrMenuItemNotFound
	}

	applyMenuRequest(item, request)
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, dbError(err)
	}
	s.refresh(ctx, item)
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, restaurantID, id uint) error {
	deleted, err := s.menuRepo.Delete(ctx, restaurantID, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return utils.ErrMenuItemNotFound
	}

	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			s.logger.Warn("failed to remove menu embedding", zap.Uint("menu_item_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *MenuService) refresh(ctx context.Context, item *db_models.MenuItem) {
	if s.index == nil {
		return
	}
	startTime := time.Now()
	if err := s.index.Refresh(ctx, item); err != nil {
		s.logger.Warn("failed to refresh menu embedding", zap.Uint("menu_item_id", item.ID), zap.Error(err))
		return
	}
	s.logger.Debug("menu embedding refreshed",
		zap.Uint("menu_item_id", item.ID),
		zap.Duration("took", time.Since(startTime)))
}
