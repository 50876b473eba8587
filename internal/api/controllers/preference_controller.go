package controllers

import (
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/services"
	"foodbridge/pkg/middleware"
	"foodbridge/pkg/utils"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

type PreferenceController struct {
	preferenceService services.PreferenceServiceInterface
	suggestionService services.SuggestionServiceInterface
}

func NewPreferenceController(
	preferenceService services.PreferenceServiceInterface,
	suggestionService services.SuggestionServiceInterface,
) *PreferenceController {
	return &PreferenceController{
		preferenceService: preferenceService,
		suggestionService: suggestionService,
	}
}

// GetPreferences godoc
// @Summary The caller's food preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences [get]
func (p *PreferenceController) GetPreferences(c *gin.Context) {
	prefs, err := p.preferenceService.GetPreferences(c.Request.Context(), middleware.GetAccountID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prefs, "Preferences fetched successfully")
}

// SavePreferences godoc
// @Summary Replace the caller's food preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param request body request_models.PreferencesRequest true "Preferences"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /preferences [put]
func (p *PreferenceController) SavePreferences(c *gin.Context) {
	var req request_models.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	prefs, err := p.preferenceService.SavePreferences(c.Request.Context(), middleware.GetAccountID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prefs, "Preferences saved successfully")
}

// SuggestMenu godoc
// @Summary Menu suggestions from the caller's preferences
// @Tags Preferences
// @Produce json
// @Param limit query int false "Maximum suggestions" default(10)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /suggestions/menu [get]
func (p *PreferenceController) SuggestMenu(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	suggestions, err := p.suggestionService.SuggestMenu(c.Request.Context(), middleware.GetAccountID(c), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, suggestions, "Suggestions fetched successfully")
}
