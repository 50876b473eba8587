package db_models

import "time"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusRejected  RequestStatus = "rejected"
	StatusCompleted RequestStatus = "completed"
)

// RequestKind names one of the three request tables.
type RequestKind string

const (
	KindFood    RequestKind = "food"
	KindPacking RequestKind = "packing"
	KindPickup  RequestKind = "pickup"
)

func ParseRequestKind(s string) (RequestKind, bool) {
	switch k := RequestKind(s); k {
	case KindFood, KindPacking, KindPickup:
		return k, true
	}
	return "", false
}

// RequestBody is shared by every request table.
type RequestBody struct {
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Quantity    int           `gorm:"not null" json:"quantity"`
	DueDate     time.Time     `gorm:"not null" json:"due_date"`
	Status      RequestStatus `gorm:"type:varchar(16);not null;index" json:"status"`
}

// FoodRequest: an NGO asks a restaurant for food.
type FoodRequest struct {
	BaseModel
	RequestBody
	NgoID        uint `gorm:"not null;index" json:"ngo_id"`
	RestaurantID uint `gorm:"not null;index" json:"restaurant_id"`
}

// PackingRequest: a restaurant or NGO asks a packing company for packaging.
type PackingRequest struct {
	BaseModel
	RequestBody
	RequesterID      uint `gorm:"not null;index" json:"requester_id"`
	RequesterType    Role `gorm:"type:varchar(32);not null" json:"requester_type"`
	PackingCompanyID uint `gorm:"not null;index" json:"packing_company_id"`
}

// PickupRequest: a restaurant asks an NGO to collect surplus food.
type PickupRequest struct {
	BaseModel
	RequestBody
	RestaurantID uint `gorm:"not null;index" json:"restaurant_id"`
	NgoID        uint `gorm:"not null;index" json:"ngo_id"`
}
