package request_models

type RateRestaurantRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Review       string `json:"review" binding:"max=2000"`
}

type PreferencesRequest struct {
	FavoriteFoods       []string `json:"favorite_foods" binding:"max=50,dive,max=64"`
	DietaryRestrictions []string `json:"dietary_restrictions" binding:"max=20,dive,max=64"`
	AverageQuantity     int      `json:"average_quantity" binding:"gte=0"`
	FamilySize          int      `json:"family_size" binding:"gte=0"`
	PrefersAC           bool     `json:"prefers_ac"`
}
