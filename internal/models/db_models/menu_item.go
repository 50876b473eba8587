package db_models

type MenuItem struct {
	BaseModel
	RestaurantID    uint    `gorm:"not null;index" json:"restaurant_id"`
	Name            string  `gorm:"not null" json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	IsAvailable     bool    `gorm:"not null" json:"is_available"`
}
