package db_models

type Rating struct {
	BaseModel
	UserID       uint   `gorm:"not null;uniqueIndex:idx_rating_user_restaurant" json:"user_id"`
	RestaurantID uint   `gorm:"not null;uniqueIndex:idx_rating_user_restaurant;index" json:"restaurant_id"`
	Rating       int    `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review       string `gorm:"type:text" json:"review,omitempty"`
}
