package controllers

import (
	"foodbridge/internal/services"
	"foodbridge/pkg/utils"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetOverview godoc
// @Summary Admin overview
// @Description Account counts per role, menu and rating totals, request counts per kind and status
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/overview [get]
func (d *DashboardController) GetOverview(c *gin.Context) {
	overview, err := d.dashboardService.BuildOverview(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, overview, "Overview fetched successfully")
}
