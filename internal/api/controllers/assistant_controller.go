package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"roamday/internal/models/request_models"
	"roamday/internal/services"
	"roamday/pkg/utils"
)

type AssistantController struct {
	assistantService services.AssistantServiceInterface
}

func NewAssistantController(assistantService services.AssistantServiceInterface) *AssistantController {
	return &AssistantController{assistantService: assistantService}
}

// HandleMessage godoc
// @Summary Modify today's plan via free text
// @Description Classify a short command (swap/remove/add/lock) and apply it
// to today's plan, or answer with a clarification
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body request_models.ModificationRequest true "Message"
// @Success 200 {object} response_models.AssistantReply
// @Security BearerAuth
// @Router /assistant/message [post]
func (a *AssistantController) HandleMessage(c *gin.Context) {
	var req request_models.ModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	reply, err := a.assistantService.HandleModification(c.Request.Context(), req.TripID, userID, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, reply.Message)
}
