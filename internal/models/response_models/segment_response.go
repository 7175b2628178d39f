package response_models

import (
	"roamday/internal/models/db_models"
	"roamday/pkg/utils"
)

type SegmentResponse struct {
	ID                   string `json:"id"`
	TripID               string `json:"trip_id"`
	City                 string `json:"city"`
	Area                 string `json:"area,omitempty"`
	Country              string `json:"country,omitempty"`
	Timezone             string `json:"timezone,omitempty"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	AccommodationName    string `json:"accommodation_name,omitempty"`
	AccommodationAddress string `json:"accommodation_address,omitempty"`
	OrderIndex           int    `json:"order_index"`
	Notes                string `json:"notes,omitempty"`
}

type SegmentContextResponse struct {
	Segment       *SegmentResponse `json:"segment"`
	NextSegment   *SegmentResponse `json:"next_segment,omitempty"`
	DayNumber     int              `json:"day_number"`
	TotalDays     int              `json:"total_days"`
	DaysRemaining int              `json:"days_remaining"`
	IsTransitDay  bool             `json:"is_transit_day"`
}

func BuildSegmentResponse(segment *db_models.TripSegment) *SegmentResponse {
	if segment == nil {
		return nil
	}
	return &SegmentResponse{
		ID:                   segment.ID.String(),
		TripID:               segment.TripID.String(),
		City:                 segment.City,
		Area:                 segment.Area,
		Country:              segment.Country,
		Timezone:             segment.Timezone,
		StartDate:            segment.StartDate.Format(utils.DateLayout),
		EndDate:              segment.EndDate.Format(utils.DateLayout),
		AccommodationName:    segment.AccommodationName,
		AccommodationAddress: segment.AccommodationAddress,
		OrderIndex:           segment.OrderIndex,
		Notes:                segment.Notes,
	}
}
