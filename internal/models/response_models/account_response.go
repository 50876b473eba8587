package response_models

import (
	"foodbridge/internal/models/db_models"
	"foodbridge/pkg/utils"
)

type AccountLoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type RestaurantSummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address,omitempty"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

type RatingsResponse struct {
	RestaurantID uint               `json:"restaurant_id"`
	Average      float64            `json:"average"`
	Count        int64              `json:"count"`
	Ratings      []db_models.Rating `json:"ratings"`
}

func NewAccountResponse(a *db_models.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		Phone:     a.Phone,
		Address:   a.Address,
		CreatedAt: utils.FormatRFC3339(utils.FromUnixSeconds(a.CreatedAt)),
	}
}
