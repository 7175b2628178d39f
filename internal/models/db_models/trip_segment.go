package db_models

import (
	"time"

	"github.com/google/uuid"
)

// TripSegment is one contiguous city stay inside a multi-city trip.
// Segments are ordered by OrderIndex; date ranges are inclusive on both ends.
type TripSegment struct {
	BaseModel
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	City      string
	Area      string
	Country   string
	Timezone  string
	StartDate time.Time `gorm:"type:date"`
	EndDate   time.Time `gorm:"type:date"`

	AccommodationName    string
	AccommodationAddress string

	OrderIndex int
	Notes      string
}
