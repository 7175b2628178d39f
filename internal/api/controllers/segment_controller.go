package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"roamday/internal/models/request_models"
	"roamday/internal/models/response_models"
	"roamday/internal/services"
	"roamday/pkg/utils"
)

type SegmentController struct {
	segmentService services.SegmentServiceInterface
}

func NewSegmentController(segmentService services.SegmentServiceInterface) *SegmentController {
	return &SegmentController{segmentService: segmentService}
}

// CreateSegment godoc
// @Summary Create a trip segment
// @Description Add a city stay to a trip; saved places are re-linked by city
// @Tags Segment
// @Accept json
// @Produce json
// @Param request body request_models.SegmentRequest true "Segment"
// @Success 200 {object} response_models.SegmentResponse
// @Security BearerAuth
// @Router /segments [post]
func (s *SegmentController) CreateSegment(c *gin.Context) {
	var req request_models.SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	segment, err := s.segmentService.CreateSegment(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.BuildSegmentResponse(segment), "Segment created successfully")
}

func (s *SegmentController) UpdateSegment(c *gin.Context) {
	segmentID := c.Param("segmentId")
	if segmentID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Segment ID is required")
		return
	}

	var req request_models.SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	segment, err := s.segmentService.UpdateSegment(c.Request.Context(), segmentID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.BuildSegmentResponse(segment), "Segment updated successfully")
}

func (s *SegmentController) DeleteSegment(c *gin.Context) {
	segmentID := c.Param("segmentId")
	if segmentID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Segment ID is required")
		return
	}

	if err := s.segmentService.DeleteSegment(c.Request.Context(), segmentID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Segment deleted successfully")
}

func (s *SegmentController) ListSegments(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	segments, err := s.segmentService.ListSegments(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out := make([]response_models.SegmentResponse, 0, len(segments))
	for i := range segments {
		out = append(out, *response_models.BuildSegmentResponse(&segments[i]))
	}
	utils.RespondSuccess(c, out, "Segments fetched successfully")
}

// GetCurrentSegment godoc
// @Summary Resolve the active segment
// @Description Resolve which segment is active for a date (today by default),
// with day number, days remaining and transit-day detection
// @Tags Segment
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response_models.SegmentContextResponse
// @Security BearerAuth
// @Router /segments/{tripId}/current [get]
func (s *SegmentController) GetCurrentSegment(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	var segCtx *services.SegmentContext
	var err error
	if dateStr := c.Query("date"); dateStr != "" {
		var date time.Time
		date, err = utils.ParseDate(dateStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Date must be YYYY-MM-DD")
			return
		}
		segCtx, err = s.segmentService.ResolveForDate(c.Request.Context(), tripID, date)
	} else {
		segCtx, _, err = s.segmentService.ResolveToday(c.Request.Context(), tripID)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.SegmentContextResponse{
		Segment:       response_models.BuildSegmentResponse(segCtx.Segment),
		NextSegment:   response_models.BuildSegmentResponse(segCtx.NextSegment),
		DayNumber:     segCtx.DayNumber,
		TotalDays:     segCtx.TotalDays,
		DaysRemaining: segCtx.DaysRemaining,
		IsTransitDay:  segCtx.IsTransitDay,
	}, "Segment resolved successfully")
}
