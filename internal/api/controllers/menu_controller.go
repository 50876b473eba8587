package controllers

import (
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/services"
	"foodbridge/pkg/middleware"
	"foodbridge/pkg/utils"
	"github.com/gin-gonic/gin"
	"net/http"
)

type MenuController struct {
	menuService   services.MenuServiceInterface
	ratingService services.RatingServiceInterface
}

func NewMenuController(menuService services.MenuServiceInterface, ratingService services.RatingServiceInterface) *MenuController {
	return &MenuController{
		menuService:   menuService,
		ratingService: ratingService,
	}
}

// ListRestaurants godoc
// @Summary List restaurants with their rating summary
// @Tags Restaurants
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /restaurants [get]
func (m *MenuController) ListRestaurants(c *gin.Context) {
	page, pageSize, ok := pageParams(c, 20)
	if !ok {
		return
	}

	restaurants, total, err := m.ratingService.ListRestaurants(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"restaurants": restaurants,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	}, "Restaurants fetched successfully")
}

// GetRestaurantMenu godoc
// @Summary A restaurant's menu
// @Description Available items only, unless the caller owns the menu
// @Tags Restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /restaurants/{id}/menu [get]
func (m *MenuController) GetRestaurantMenu(c *gin.Context) {
	restaurantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	items, err := m.menuService.ListRestaurantMenu(c.Request.Context(), middleware.GetAccountID(c), restaurantID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Menu fetched successfully")
}

// ListOwnMenu godoc
// @Summary The caller's own menu, including unavailable items
// @Tags Menu
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /menu [get]
func (m *MenuController) ListOwnMenu(c *gin.Context) {
	items, err := m.menuService.ListOwn(c.Request.Context(), middleware.GetAccountID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Menu fetched successfully")
}

// CreateMenuItem godoc
// @Summary Add a menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body request_models.MenuItemRequest true "Menu item"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /menu [post]
func (m *MenuController) CreateMenuItem(c *gin.Context) {
	var req request_models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := m.menuService.CreateItem(c.Request.Context(), middleware.GetAccountID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, item, "Menu item created successfully")
}

// UpdateMenuItem godoc
// @Summary Replace a menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param request body request_models.MenuItemRequest true "Menu item"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /menu/{id} [put]
func (m *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := m.menuService.UpdateItem(c.Request.Context(), middleware.GetAccountID(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Menu item updated successfully")
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Tags Menu
// @Param id path int true "Menu item ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /menu/{id} [delete]
func (m *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := m.menuService.DeleteItem(c.Request.Context(), middleware.GetAccountID(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Menu item deleted successfully")
}
