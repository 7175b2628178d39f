package response_models

import (
	"roamday/internal/models/db_models"
	"roamday/pkg/utils"
)

// PlaceSummary is the catalog view of a stop's place. Stops without a
// catalog entry get a placeholder synthesized from the stop itself, so
// callers must tolerate non-catalog ids here.
type PlaceSummary struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	MustVisit bool    `json:"must_visit,omitempty"`
}

type StopResponse struct {
	Order           int          `json:"order"`
	PlannedTime     string       `json:"planned_time"`
	DurationMinutes int          `json:"duration_minutes"`
	Notes           string       `json:"notes,omitempty"`
	Place           PlaceSummary `json:"place"`
}

type PlanResponse struct {
	ID                   string                  `json:"id"`
	TripID               string                  `json:"trip_id"`
	SegmentID            string                  `json:"segment_id,omitempty"`
	PlanDate             string                  `json:"plan_date"`
	Title                string                  `json:"title"`
	Summary              string                  `json:"summary,omitempty"`
	Stops                []StopResponse          `json:"stops"`
	TotalDurationMinutes int                     `json:"total_duration_minutes"`
	TotalDistanceMeters  int                     `json:"total_distance_meters"`
	Status               string                  `json:"status"`
	DayContext           *SegmentContextResponse `json:"day_context,omitempty"`
}

type GenerateResult struct {
	Plan    *PlanResponse `json:"plan"`
	Message string        `json:"message"`
}

type AssistantReply struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Plan    *PlanResponse `json:"plan,omitempty"`
}

// BuildPlanResponse resolves each stop against the saved-place pool and
// synthesizes placeholders for stops that carry only a name or notes.
func BuildPlanResponse(plan *db_models.DailyPlan, placesByID map[string]db_models.SavedPlace) *PlanResponse {
	if plan == nil {
		return nil
	}

	stops := make([]StopResponse, 0, len(plan.Stops))
	for _, stop := range plan.Stops {
		stops = append(stops, StopResponse{
			Order:           stop.Order,
			PlannedTime:     stop.PlannedTime,
			DurationMinutes: stop.DurationMinutes,
			Notes:           stop.Notes,
			Place:           resolveStopPlace(stop, placesByID),
		})
	}

	out := &PlanResponse{
		ID:                   plan.ID.String(),
		TripID:               plan.TripID.String(),
		PlanDate:             plan.PlanDate.Format(utils.DateLayout),
		Title:                plan.Title,
		Summary:              plan.Summary,
		Stops:                stops,
		TotalDurationMinutes: plan.TotalDurationMinutes,
		TotalDistanceMeters:  plan.TotalDistanceMeters,
		Status:               string(plan.Status),
	}
	if plan.SegmentID != nil {
		out.SegmentID = plan.SegmentID.String()
	}
	return out
}

func resolveStopPlace(stop db_models.Stop, placesByID map[string]db_models.SavedPlace) PlaceSummary {
	if place, ok := placesByID[stop.PlaceID]; ok {
		return PlaceSummary{
			ID:        place.ID.String(),
			Name:      place.Name,
			Category:  place.Category,
			Rating:    place.Rating,
			MustVisit: place.MustVisit,
		}
	}

	name := stop.PlaceName
	if name == "" {
		name = stop.Notes
	}
	return PlaceSummary{
		ID:   stop.PlaceID,
		Name: name,
	}
}
