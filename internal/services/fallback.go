package services

import (
	"fmt"
	"sort"
	"strings"

	"roamday/internal/models/db_models"
	"roamday/pkg/utils"
)

// Route distance is a placeholder; real routing is an external concern.
const fallbackDistanceMeters = 5000

// buildFallbackStops fills the day's time slots from the pool without the
// optimizer. Given the same pool and hour it always produces the same stops
// in the same order. A slot with no eligible candidate is omitted, so plans
// may legitimately hold fewer stops than the nominal count.
func buildFallbackStops(pool []db_models.SavedPlace, nowHour int) db_models.StopList {
	remaining := rankPool(pool)
	stops := db_models.StopList{}

	clock := nowHour * 60
	if clock < 9*60 {
		clock = 9 * 60
	}
	if clock > 21*60 {
		clock = 21 * 60
	}

	// Breakfast, while it is still morning.
	if clock < 11*60 {
		if place := takeFirst(&remaining, "food"); place != nil {
			stops = append(stops, placeStop(place, utils.FormatClock(clock), 60))
			clock += 60
		}
	}

	// Up to two morning attractions.
	for picks := 0; picks < 2 && clock < 12*60; picks++ {
		place := takeFirst(&remaining, "place", "activity")
		if place == nil {
			break
		}
		stops = append(stops, placeStop(place, utils.FormatClock(clock), 90))
		clock += 120
	}

	// Lunch is pinned to 12:30; the afternoon starts at 14:00 whether or not
	// a food item was left to pick.
	if clock <= 14*60 {
		if place := takeFirst(&remaining, "food"); place != nil {
			stops = append(stops, placeStop(place, "12:30", 60))
		}
		clock = 14 * 60
	}

	// Up to two afternoon picks.
	for picks := 0; picks < 2 && clock < 18*60; picks++ {
		place := takeFirst(&remaining, "shopping", "activity", "place")
		if place == nil {
			break
		}
		stops = append(stops, placeStop(place, utils.FormatClock(clock), 90))
		clock += 120
	}

	// Dinner is pinned to 18:30.
	if place := takeFirst(&remaining, "food"); place != nil {
		stops = append(stops, placeStop(place, "18:30", 60))
	}

	return stops.Resequence()
}

// rankPool orders candidates must_visit first, then by rating descending;
// ties keep pool order.
func rankPool(pool []db_models.SavedPlace) []db_models.SavedPlace {
	ranked := make([]db_models.SavedPlace, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MustVisit != ranked[j].MustVisit {
			return ranked[i].MustVisit
		}
		return ranked[i].Rating > ranked[j].Rating
	})
	return ranked
}

// takeFirst removes and returns the first remaining place whose category is
// in categories, or nil when none is left.
func takeFirst(remaining *[]db_models.SavedPlace, categories ...string) *db_models.SavedPlace {
	for i, place := range *remaining {
		for _, category := range categories {
			if strings.EqualFold(place.Category, category) {
				picked := place
				*remaining = append((*remaining)[:i], (*remaining)[i+1:]...)
				return &picked
			}
		}
	}
	return nil
}

func placeStop(place *db_models.SavedPlace, plannedTime string, durationMinutes int) db_models.Stop {
	return db_models.Stop{
		PlaceID:         place.ID.String(),
		PlaceName:       place.Name,
		PlannedTime:     plannedTime,
		DurationMinutes: durationMinutes,
	}
}

func fallbackTitle(city string) string {
	if city == "" {
		return "Your day plan"
	}
	return fmt.Sprintf("Your day in %s", city)
}

func fallbackSummary(city string, stopCount int) string {
	if city == "" {
		return fmt.Sprintf("A day plan with %d stops from your saved places.", stopCount)
	}
	return fmt.Sprintf("A day in %s with %d stops from your saved places.", city, stopCount)
}
