package request_models

type GeneratePlanRequest struct {
	TripID string `json:"trip_id" binding:"required"`
	// Date is optional ("2006-01-02"); today in the trip's timezone when empty.
	Date string `json:"date"`
	// Prompt optionally carries free text with "must include" anchors.
	Prompt string `json:"prompt"`
}

type StopPayload struct {
	PlaceID         string `json:"place_id"`
	PlaceName       string `json:"place_name"`
	PlannedTime     string `json:"planned_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

type UpdateStopsRequest struct {
	Stops                []StopPayload `json:"stops" binding:"required"`
	TotalDurationMinutes int           `json:"total_duration_minutes"`
	TotalDistanceMeters  int           `json:"total_distance_meters"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddStopRequest struct {
	StopPayload
}

type SwapStopRequest struct {
	FromPlaceID string `json:"from_place_id" binding:"required"`
	ToPlaceID   string `json:"to_place_id" binding:"required"`
}
