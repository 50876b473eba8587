package request_models

import "time"

// CreateRequest is the body for food, packing and pickup requests alike.
// CounterpartyID is the restaurant, packing company or NGO being asked.
// A client-sent status is ignored.
type CreateRequest struct {
	CounterpartyID uint      `json:"counterparty_id" binding:"required"`
	Title          string    `json:"title" binding:"required,max=200"`
	Description    string    `json:"description" binding:"max=2000"`
	Quantity       int       `json:"quantity" binding:"required,gt=0"`
	DueDate        time.Time `json:"due_date" binding:"required,future"`
	Status         string    `json:"status"`
}
