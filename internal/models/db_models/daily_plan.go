package db_models

import (
	"time"

	"github.com/google/uuid"
)

type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// ValidPlanStatus reports whether s is one of the accepted status values.
// Transitions between accepted values are not otherwise constrained.
func ValidPlanStatus(s string) bool {
	switch PlanStatus(s) {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusCancelled:
		return true
	}
	return false
}

// PlaceIDUserRequest marks a stop that came from a user anchor with no
// matching place in the saved pool.
const PlaceIDUserRequest = "user_request"

// Stop is one scheduled visit within a daily plan. PlaceID may be empty for
// placeholder or imported stops, which carry a literal PlaceName instead.
type Stop struct {
	PlaceID         string `json:"place_id,omitempty"`
	PlaceName       string `json:"place_name,omitempty"`
	Order           int    `json:"order"`
	PlannedTime     string `json:"planned_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes,omitempty"`
}

// StopList is kept strongly typed in memory and serialized to jsonb only at
// the persistence boundary.
type StopList []Stop

// Resequence rewrites Order to a dense 0..n-1 run in slice order.
func (s StopList) Resequence() StopList {
	for i := range s {
		s[i].Order = i
	}
	return s
}

// Append adds a stop at the end with order = current length.
func (s StopList) Append(stop Stop) StopList {
	stop.Order = len(s)
	return append(s, stop)
}

// RemoveByPlaceID filters out stops referencing placeID and re-sequences.
func (s StopList) RemoveByPlaceID(placeID string) (StopList, bool) {
	out := make(StopList, 0, len(s))
	removed := false
	for _, stop := range s {
		if stop.PlaceID == placeID {
			removed = true
			continue
		}
		out = append(out, stop)
	}
	return out.Resequence(), removed
}

// SwapPlaceID replaces fromPlaceID with toPlaceID in place, keeping the
// stop's order, time and duration.
func (s StopList) SwapPlaceID(fromPlaceID, toPlaceID, toPlaceName string) (StopList, bool) {
	swapped := false
	for i := range s {
		if s[i].PlaceID == fromPlaceID {
			s[i].PlaceID = toPlaceID
			s[i].PlaceName = toPlaceName
			swapped = true
		}
	}
	return s, swapped
}

// TotalDuration sums stop durations in minutes.
func (s StopList) TotalDuration() int {
	total := 0
	for _, stop := range s {
		total += stop.DurationMinutes
	}
	return total
}

// DailyPlan is the single itinerary for one (trip, date) pair. The pair is
// unique; upserts do a full replace of the conflicting row.
type DailyPlan struct {
	BaseModel
	TripID    uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_daily_plans_trip_date"`
	SegmentID *uuid.UUID `gorm:"type:uuid"`
	PlanDate  time.Time  `gorm:"type:date;uniqueIndex:idx_daily_plans_trip_date"`
	Title     string
	Summary   string

	Stops StopList `gorm:"serializer:json"`

	TotalDurationMinutes int
	TotalDistanceMeters  int

	Status PlanStatus `gorm:"size:16;default:active"`
}
