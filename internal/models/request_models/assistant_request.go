package request_models

type ModificationRequest struct {
	TripID  string `json:"trip_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}
