package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamday/internal/models/db_models"
)

func poolPlace(name, category string, rating float64, mustVisit bool) db_models.SavedPlace {
	p := db_models.SavedPlace{Name: name, Category: category, Rating: rating, MustVisit: mustVisit}
	p.ID = uuid.New()
	return p
}

func stopTimes(stops db_models.StopList) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.PlaceName+"@"+s.PlannedTime)
	}
	return out
}

func TestBuildFallbackStops_MorningStart(t *testing.T) {
	pool := []db_models.SavedPlace{
		poolPlace("Ramen Shop", "food", 4.5, false),
		poolPlace("Castle", "place", 4.8, true),
		poolPlace("Market", "shopping", 4.0, false),
	}

	stops := buildFallbackStops(pool, 9)

	require.Len(t, stops, 3)
	assert.Equal(t, []string{
		"Ramen Shop@09:00",
		"Castle@10:00",
		"Market@14:00",
	}, stopTimes(stops))
	assert.Equal(t, 60, stops[0].DurationMinutes)
	assert.Equal(t, 90, stops[1].DurationMinutes)
	assert.Equal(t, 90, stops[2].DurationMinutes)
	assert.Equal(t, 240, stops.TotalDuration())
}

func TestBuildFallbackStops_Deterministic(t *testing.T) {
	pool := []db_models.SavedPlace{
		poolPlace("A", "food", 4.0, false),
		poolPlace("B", "place", 4.0, false),
		poolPlace("C", "activity", 4.0, false),
		poolPlace("D", "shopping", 4.0, false),
		poolPlace("E", "food", 3.5, false),
	}

	first := buildFallbackStops(pool, 9)
	second := buildFallbackStops(pool, 9)

	assert.Equal(t, first, second)
}

func TestBuildFallbackStops_EmptyPool(t *testing.T) {
	stops := buildFallbackStops(nil, 9)

	assert.Empty(t, stops)
}

func TestBuildFallbackStops_EveningStartSkipsDaySlots(t *testing.T) {
	pool := []db_models.SavedPlace{
		poolPlace("Ramen Shop", "food", 4.5, false),
		poolPlace("Castle", "place", 4.8, true),
	}

	stops := buildFallbackStops(pool, 19)

	// Past every daytime window: only dinner remains.
	require.Len(t, stops, 1)
	assert.Equal(t, "Ramen Shop", stops[0].PlaceName)
	assert.Equal(t, "18:30", stops[0].PlannedTime)
}

func TestBuildFallbackStops_FullDay(t *testing.T) {
	pool := []db_models.SavedPlace{
		poolPlace("Cafe", "food", 4.2, false),
		poolPlace("Bistro", "food", 4.6, false),
		poolPlace("Izakaya", "food", 4.4, false),
		poolPlace("Shrine", "place", 4.9, true),
		poolPlace("Museum", "place", 4.3, false),
		poolPlace("Arcade", "activity", 4.1, false),
		poolPlace("Bazaar", "shopping", 4.0, false),
	}

	stops := buildFallbackStops(pool, 8)

	// Breakfast plus one sight runs the clock to exactly noon, so the second
	// morning slot never opens and the afternoon takes over.
	require.Len(t, stops, 6)
	assert.Equal(t, []string{
		"Bistro@09:00",
		"Shrine@10:00",
		"Izakaya@12:30",
		"Museum@14:00",
		"Arcade@16:00",
		"Cafe@18:30",
	}, stopTimes(stops))
	for i, stop := range stops {
		assert.Equal(t, i, stop.Order)
	}
}

func TestRankPool_MustVisitThenRatingStable(t *testing.T) {
	pool := []db_models.SavedPlace{
		poolPlace("Low", "place", 3.0, false),
		poolPlace("TiedFirst", "place", 4.0, false),
		poolPlace("TiedSecond", "place", 4.0, false),
		poolPlace("Must", "place", 2.0, true),
	}

	ranked := rankPool(pool)

	names := make([]string, 0, len(ranked))
	for _, p := range ranked {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Must", "TiedFirst", "TiedSecond", "Low"}, names)
}
