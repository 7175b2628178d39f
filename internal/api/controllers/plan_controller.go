package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"roamday/internal/models/request_models"
	"roamday/internal/services"
	"roamday/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{planService: planService}
}

// GeneratePlan godoc
// @Summary Generate the daily plan
// @Description Build and persist the itinerary for a trip and date. Repeated
// calls for the same date replace the stored plan.
// @Tags Plan
// @Accept json
// @Produce json
// @Param request body request_models.GeneratePlanRequest true "Generation request"
// @Success 200 {object} response_models.GenerateResult
// @Security BearerAuth
// @Router /plans/generate [post]
func (p *PlanController) GeneratePlan(c *gin.Context) {
	var req request_models.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	result, err := p.planService.GeneratePlan(c.Request.Context(), req.TripID, userID, req.Date, req.Prompt)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, result.Message)
}

func (p *PlanController) GetToday(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	plan, err := p.planService.GetToday(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

func (p *PlanController) GetByDate(c *gin.Context) {
	tripID := c.Param("tripId")
	dateStr := c.Query("date")
	if tripID == "" || dateStr == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID and date are required")
		return
	}

	plan, err := p.planService.GetByDate(c.Request.Context(), tripID, dateStr)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

func (p *PlanController) GetAll(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	plans, err := p.planService.GetAll(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

func (p *PlanController) UpdateStops(c *gin.Context) {
	planID := c.Param("planId")
	var req request_models.UpdateStopsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.UpdateStops(c.Request.Context(), planID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Stops updated successfully")
}

// UpdateStatus godoc
// @Summary Update plan status
// @Description Set the plan status; only active, completed and cancelled are accepted
// @Tags Plan
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param request body request_models.UpdateStatusRequest true "Status"
// @Success 200 {object} response_models.PlanResponse
// @Security BearerAuth
// @Router /plans/{planId}/status [patch]
func (p *PlanController) UpdateStatus(c *gin.Context) {
	planID := c.Param("planId")
	var req request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.UpdateStatus(c.Request.Context(), planID, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Status updated successfully")
}

func (p *PlanController) AddStop(c *gin.Context) {
	planID := c.Param("planId")
	var req request_models.AddStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.AddStop(c.Request.Context(), planID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Stop added successfully")
}

func (p *PlanController) RemoveStop(c *gin.Context) {
	planID := c.Param("planId")
	placeID := c.Param("placeId")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place ID is required")
		return
	}

	plan, err := p.planService.RemoveStop(c.Request.Context(), planID, placeID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Stop removed successfully")
}

func (p *PlanController) SwapStop(c *gin.Context) {
	planID := c.Param("planId")
	var req request_models.SwapStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.SwapStop(c.Request.Context(), planID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Stop swapped successfully")
}

func (p *PlanController) DeletePlan(c *gin.Context) {
	planID := c.Param("planId")
	if err := p.planService.DeletePlan(c.Request.Context(), planID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Plan deleted successfully")
}
