package controllers

import (
	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/services"
	"foodbridge/pkg/middleware"
	"foodbridge/pkg/utils"
	"github.com/gin-gonic/gin"
	"net/http"
)

// RequestController serves food, packing and pickup requests; the kind is
// the :kind path segment.
type RequestController struct {
	requestService services.RequestServiceInterface
}

func NewRequestController(requestService services.RequestServiceInterface) *RequestController {
	return &RequestController{requestService: requestService}
}

// CreateRequest godoc
// @Summary Create a request
// @Description Status always starts as pending
// @Tags Requests
// @Accept json
// @Produce json
// @Param kind path string true "food, packing or pickup"
// @Param request body request_models.CreateRequest true "Request payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /requests/{kind} [post]
func (r *RequestController) CreateRequest(c *gin.Context) {
	var req request_models.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := r.requestService.CreateRequest(c.Request.Context(), c.Param("kind"),
		middleware.GetAccountID(c), middleware.GetRole(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, created, "Request created successfully")
}

// ListOutgoing godoc
// @Summary Requests the caller sent
// @Tags Requests
// @Produce json
// @Param kind path string true "food, packing or pickup"
// @Param status query string false "pending, accepted, rejected or completed"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /requests/{kind}/outgoing [get]
func (r *RequestController) ListOutgoing(c *gin.Context) {
	list, err := r.requestService.ListOutgoing(c.Request.Context(), c.Param("kind"),
		middleware.GetAccountID(c), middleware.GetRole(c), c.Query("status"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Requests fetched successfully")
}

// ListIncoming godoc
// @Summary Requests addressed to the caller
// @Tags Requests
// @Produce json
// @Param kind path string true "food, packing or pickup"
// @Param status query string false "pending, accepted, rejected or completed"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /requests/{kind}/incoming [get]
func (r *RequestController) ListIncoming(c *gin.Context) {
	list, err := r.requestService.ListIncoming(c.Request.Context(), c.Param("kind"),
		middleware.GetAccountID(c), middleware.GetRole(c), c.Query("status"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Requests fetched successfully")
}

// Accept godoc
// @Summary Accept a pending request
// @Tags Requests
// @Param kind path string true "food, packing or pickup"
// @Param id path int true "Request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /requests/{kind}/{id}/accept [post]
func (r *RequestController) Accept(c *gin.Context) {
	r.transition(c, db_models.StatusAccepted, "Request accepted")
}

// Reject godoc
// @Summary Reject a pending request
// @Tags Requests
// @Param kind path string true "food, packing or pickup"
// @Param id path int true "Request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /requests/{kind}/{id}/reject [post]
func (r *RequestController) Reject(c *gin.Context) {
	r.transition(c, db_models.StatusRejected, "Request rejected")
}

// Complete godoc
// @Summary Complete an accepted request
// @Tags Requests
// @Param kind path string true "food, packing or pickup"
// @Param id path int true "Request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /requests/{kind}/{id}/complete [post]
func (r *RequestController) Complete(c *gin.Context) {
	r.transition(c, db_models.StatusCompleted, "Request completed")
}

func (r *RequestController) transition(c *gin.Context, to db_models.RequestStatus, message string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	updated, err := r.requestService.Transition(c.Request.Context(), c.Param("kind"), id,
		middleware.GetAccountID(c), middleware.GetRole(c), to)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, updated, message)
}

// Lifecycle godoc
// @Summary Request status flow
// @Description Statuses, terminal states and the action that performs each transition
// @Tags Requests
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /request-lifecycle [get]
func (r *RequestController) Lifecycle(c *gin.Context) {
	utils.RespondSuccess(c, r.requestService.Lifecycle(), "Request lifecycle fetched successfully")
}
