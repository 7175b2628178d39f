package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"roamday/internal/services"
	"roamday/pkg/utils"
)

type PlaceController struct {
	placeService services.PlaceServiceInterface
}

func NewPlaceController(placeService services.PlaceServiceInterface) *PlaceController {
	return &PlaceController{placeService: placeService}
}

func (p *PlaceController) ListByTrip(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	places, err := p.placeService.ListByTrip(c.Request.Context(), tripID, c.Query("status"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

func (p *PlaceController) ListForSegment(c *gin.Context) {
	segmentID := c.Param("segmentId")
	if segmentID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Segment ID is required")
		return
	}

	places, err := p.placeService.ListForSegment(c.Request.Context(), segmentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}
