package request_models

type MenuItemRequest struct {
	Name            string  `json:"name" binding:"required,max=120"`
	Description     string  `json:"description" binding:"max=1000"`
	Price           float64 `json:"price" binding:"gte=0"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	CarbonFootprint float64 `json:"carbon_footprint" binding:"gte=0"`
	// IsAvailable defaults to true when omitted.
	IsAvailable *bool `json:"is_available"`
}
