package request_models

type SegmentRequest struct {
	TripID               string `json:"trip_id" binding:"required"`
	City                 string `json:"city" binding:"required"`
	Area                 string `json:"area"`
	Country              string `json:"country"`
	Timezone             string `json:"timezone"`
	StartDate            string `json:"start_date" binding:"required"`
	EndDate              string `json:"end_date" binding:"required"`
	AccommodationName    string `json:"accommodation_name"`
	AccommodationAddress string `json:"accommodation_address"`
	OrderIndex           int    `json:"order_index"`
	Notes                string `json:"notes"`
}
