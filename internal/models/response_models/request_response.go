package response_models

import "time"

// RequestResponse is one food, packing or pickup request as seen by either
// party, with the other party's display name resolved.
type RequestResponse struct {
	ID               uint      `json:"id"`
	Kind             string    `json:"kind"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Quantity         int       `json:"quantity"`
	DueDate          time.Time `json:"due_date"`
	Status           string    `json:"status"`
	RequesterID      uint      `json:"requester_id"`
	RequesterRole    string    `json:"requester_role"`
	RequesterName    string    `json:"requester_name,omitempty"`
	CounterpartyID   uint      `json:"counterparty_id"`
	CounterpartyRole string    `json:"counterparty_role"`
	CounterpartyName string    `json:"counterparty_name,omitempty"`
	ValidNextStates  []string  `json:"valid_next_states"`
	CreatedAt        string    `json:"created_at"`
}

type SuggestionResponse struct {
	MenuItemID      uint    `json:"menu_item_id"`
	RestaurantID    uint    `json:"restaurant_id"`
	RestaurantName  string  `json:"restaurant_name,omitempty"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	Reason          string  `json:"reason"`
}

type LifecycleStatus struct {
	Status   string   `json:"status"`
	Terminal bool     `json:"terminal"`
	Next     []string `json:"next"`
}

type LifecycleTransition struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Action string `json:"action"`
}

// RequestLifecycle describes the status flow shared by every request kind.
type RequestLifecycle struct {
	Initial     string                `json:"initial"`
	Statuses    []LifecycleStatus     `json:"statuses"`
	Transitions []LifecycleTransition `json:"transitions"`
}
