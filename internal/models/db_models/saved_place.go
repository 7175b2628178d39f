package db_models

import "github.com/google/uuid"

const (
	PlaceStatusSaved   = "saved"
	PlaceStatusVisited = "visited"
)

// SavedPlace is one entry in a trip's saved-place pool. SegmentID is nil
// until the re-link pass assigns the place to a segment by city match.
type SavedPlace struct {
	BaseModel
	TripID    uuid.UUID  `gorm:"type:uuid;index"`
	SegmentID *uuid.UUID `gorm:"type:uuid"`

	Name      string
	City      string
	Category  string
	Rating    float64
	MustVisit bool
	Latitude  float64
	Longitude float64

	Status string `gorm:"size:16;default:saved"`
}
