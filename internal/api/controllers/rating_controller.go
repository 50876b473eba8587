package controllers

import (
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/services"
	"foodbridge/pkg/middleware"
	"foodbridge/pkg/utils"
	"github.com/gin-gonic/gin"
	"net/http"
)

type RatingController struct {
	ratingService services.RatingServiceInterface
}

func NewRatingController(ratingService services.RatingServiceInterface) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// RateRestaurant godoc
// @Summary Rate a restaurant
// @Description Rating again replaces the caller's previous rating and review
// @Tags Ratings
// @Accept json
// @Produce json
// @Param request body request_models.RateRestaurantRequest true "Rating payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ratings [put]
func (r *RatingController) RateRestaurant(c *gin.Context) {
	var req request_models.RateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	rating, err := r.ratingService.RateRestaurant(c.Request.Context(), middleware.GetAccountID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rating, "Rating saved successfully")
}

// GetRestaurantRatings godoc
// @Summary A restaurant's ratings with average and count
// @Tags Ratings
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /restaurants/{id}/ratings [get]
func (r *RatingController) GetRestaurantRatings(c *gin.Context) {
	restaurantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	ratings, err := r.ratingService.GetRatings(c.Request.Context(), restaurantID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, ratings, "Ratings fetched successfully")
}
