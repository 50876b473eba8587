package controllers

import (
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/models/response_models"
	"foodbridge/internal/services"
	"foodbridge/pkg/middleware"
	"foodbridge/pkg/utils"
	"github.com/gin-gonic/gin"
	"net/http"
)

type AdminController struct {
	adminService services.AdminServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface) *AdminController {
	return &AdminController{adminService: adminService}
}

// ListAccounts godoc
// @Summary List accounts
// @Tags Admin
// @Produce json
// @Param role query string false "Only this role"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/accounts [get]
func (a *AdminController) ListAccounts(c *gin.Context) {
	page, pageSize, ok := pageParams(c, 20)
	if !ok {
		return
	}

	accounts, total, err := a.adminService.ListAccounts(c.Request.Context(), c.Query("role"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.AccountListResponse{
		Accounts: make([]response_models.AccountResponse, 0, len(accounts)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range accounts {
		resp.Accounts = append(resp.Accounts, response_models.NewAccountResponse(&accounts[i]))
	}
	utils.RespondSuccess(c, resp, "Accounts fetched successfully")
}

// GetAccount godoc
// @Summary Get one account
// @Tags Admin
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/accounts/{id} [get]
func (a *AdminController) GetAccount(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	account, err := a.adminService.GetAccount(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewAccountResponse(account), "Account fetched successfully")
}

// UpdateAccount godoc
// @Summary Update an account
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body request_models.AdminUpdateAccountRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/accounts/{id} [put]
func (a *AdminController) UpdateAccount(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req request_models.AdminUpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.adminService.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewAccountResponse(account), "Account updated successfully")
}

// DeleteAccount godoc
// @Summary Delete an account and everything it owns
// @Tags Admin
// @Param id path int true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/accounts/{id} [delete]
func (a *AdminController) DeleteAccount(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := a.adminService.DeleteAccount(c.Request.Context(), middleware.GetAccountID(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account deleted successfully")
}
