package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamday/internal/models/db_models"
	"roamday/internal/models/request_models"
	"roamday/internal/services"
	"roamday/pkg/utils"
)

// fixedNow pins the clock at 09:00 so the fallback slot-filling is stable.
func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

// examplePool returns a small pool: one food place, one must-visit sight,
// one shopping place.
func examplePool() []db_models.SavedPlace {
	ramen := db_models.SavedPlace{Name: "Ramen Shop", Category: "food", Rating: 4.5, Status: db_models.PlaceStatusSaved}
	ramen.ID = uuid.New()
	castle := db_models.SavedPlace{Name: "Castle", Category: "place", Rating: 4.8, MustVisit: true, Status: db_models.PlaceStatusSaved}
	castle.ID = uuid.New()
	market := db_models.SavedPlace{Name: "Market", Category: "shopping", Rating: 4.0, Status: db_models.PlaceStatusSaved}
	market.ID = uuid.New()
	return []db_models.SavedPlace{ramen, castle, market}
}

// inMemoryUpsert mimics the (trip_id, plan_date) unique index: the first
// write creates the row, later writes replace it but keep its id.
func inMemoryUpsert() (*mockPlanRepo, map[string]*db_models.DailyPlan) {
	store := map[string]*db_models.DailyPlan{}
	repo := &mockPlanRepo{
		upsert: func(_ context.Context, plan *db_models.DailyPlan) (*db_models.DailyPlan, error) {
			key := plan.TripID.String() + "|" + plan.PlanDate.Format("2006-01-02")
			if existing, ok := store[key]; ok {
				plan.BaseModel = existing.BaseModel
			} else if plan.ID == uuid.Nil {
				plan.ID = uuid.New()
			}
			stored := *plan
			store[key] = &stored
			return &stored, nil
		},
	}
	return repo, store
}

func newPlanService(planRepo *mockPlanRepo, placeRepo *mockPlaceRepo, segmentRepo *mockSegmentRepo, planner *fakePlanner) services.PlanServiceInterface {
	segmentService := services.NewSegmentService(segmentRepo, placeRepo, fixedNow)
	return services.NewPlanService(planRepo, placeRepo, segmentService, planner, fixedNow)
}

func poolPlaceRepo(pool []db_models.SavedPlace) *mockPlaceRepo {
	return &mockPlaceRepo{
		findByTrip: func(_ context.Context, _ string, _ string) ([]db_models.SavedPlace, error) {
			return pool, nil
		},
	}
}

func failingPlanner() *fakePlanner {
	return &fakePlanner{
		complete: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("optimizer timeout")
		},
	}
}

// ---- generation ------------------------------------------------------------

func TestPlanService_Generate_FallbackSlotFilling(t *testing.T) {
	pool := examplePool()
	planRepo, _ := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(pool), &mockSegmentRepo{}, failingPlanner())

	result, err := svc.GeneratePlan(context.Background(), uuid.New().String(), "user-1", "", "")

	require.NoError(t, err)
	require.NotNil(t, result.Plan)
	require.Len(t, result.Plan.Stops, 3)

	// Breakfast takes the only food item, the must-visit sight fills the
	// morning, shopping lands after the forced 14:00 afternoon reset.
	assert.Equal(t, "Ramen Shop", result.Plan.Stops[0].Place.Name)
	assert.Equal(t, "09:00", result.Plan.Stops[0].PlannedTime)
	assert.Equal(t, 60, result.Plan.Stops[0].DurationMinutes)

	assert.Equal(t, "Castle", result.Plan.Stops[1].Place.Name)
	assert.Equal(t, "10:00", result.Plan.Stops[1].PlannedTime)
	assert.Equal(t, 90, result.Plan.Stops[1].DurationMinutes)

	assert.Equal(t, "Market", result.Plan.Stops[2].Place.Name)
	assert.Equal(t, "14:00", result.Plan.Stops[2].PlannedTime)
	assert.Equal(t, 90, result.Plan.Stops[2].DurationMinutes)

	assert.Equal(t, 240, result.Plan.TotalDurationMinutes)
	for i, stop := range result.Plan.Stops {
		assert.Equal(t, i, stop.Order)
	}
}

func TestPlanService_Generate_OptimizerFailureStillYieldsPoolIDs(t *testing.T) {
	pool := examplePool()
	planRepo, _ := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(pool), &mockSegmentRepo{}, failingPlanner())

	result, err := svc.GeneratePlan(context.Background(), uuid.New().String(), "user-1", "", "")

	require.NoError(t, err)
	known := map[string]bool{}
	for _, place := range pool {
		known[place.ID.String()] = true
	}
	for _, stop := range result.Plan.Stops {
		assert.True(t, known[stop.Place.ID], "stop references a place outside the pool: %s", stop.Place.ID)
	}
}

func TestPlanService_Generate_SameDateKeepsPlanID(t *testing.T) {
	pool := examplePool()
	planRepo, _ := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(pool), &mockSegmentRepo{}, failingPlanner())
	tripID := uuid.New().String()

	first, err := svc.GeneratePlan(context.Background(), tripID, "user-1", "2026-03-14", "")
	require.NoError(t, err)
	second, err := svc.GeneratePlan(context.Background(), tripID, "user-1", "2026-03-14", "")
	require.NoError(t, err)

	assert.Equal(t, first.Plan.ID, second.Plan.ID)
}

func TestPlanService_Generate_UnknownOptimizerIDsDropped(t *testing.T) {
	pool := examplePool()
	castleID := pool[1].ID.String()
	planner := &fakePlanner{
		complete: func(_ context.Context, _ string) (string, error) {
			return fmt.Sprintf(`{"title":"Day out","summary":"A day","stops":[
				{"place_id":%q,"planned_time":"10:00","duration_minutes":90},
				{"place_id":"not-in-pool","planned_time":"12:00","duration_minutes":60}
			]}`, castleID), nil
		},
	}
	planRepo, _ := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(pool), &mockSegmentRepo{}, planner)

	result, err := svc.GeneratePlan(context.Background(), uuid.New().String(), "user-1", "", "")

	require.NoError(t, err)
	require.Len(t, result.Plan.Stops, 1)
	assert.Equal(t, castleID, result.Plan.Stops[0].Place.ID)
	assert.Equal(t, "Day out", result.Plan.Title)
}

func TestPlanService_Generate_ZeroValidStopsFallsBack(t *testing.T) {
	pool := examplePool()
	planner := &fakePlanner{
		complete: func(_ context.Context, _ string) (string, error) {
			return `{"title":"x","stops":[{"place_id":"ghost","planned_time":"10:00"}]}`, nil
		},
	}
	planRepo, _ := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(pool), &mockSegmentRepo{}, planner)

	result, err := svc.GeneratePlan(context.Background(), uuid.New().String(), "user-1", "", "")

	require.NoError(t, err)
	require.Len(t, result.Plan.Stops, 3)
	assert.Equal(t, "Ramen Shop", result.Plan.Stops[0].Place.Name)
}

func TestPlanService_Generate_UnmatchedAnchorBecomesUserRequestStop(t *testing.T) {
	pool := examplePool()
	castleID := pool[1].ID.String()
	planner := &fakePlanner{
		complete: func(_ context.Context, _ string) (string, error) {
			return fmt.Sprintf(`{"title":"Day","summary":"s","stops":[{"place_id":%q,"planned_time":"10:00","duration_minutes":90}]}`, castleID), nil
		},
	}
	planRepo, _ := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(pool), &mockSegmentRepo{}, planner)

	result, err := svc.GeneratePlan(context.Background(), uuid.New().String(), "user-1", "", "I want to visit the secret garden.")

	require.NoError(t, err)
	require.Len(t, result.Plan.Stops, 2)
	placeholder := result.Plan.Stops[1]
	assert.Equal(t, db_models.PlaceIDUserRequest, placeholder.Place.ID)
	assert.Equal(t, "the secret garden", placeholder.Place.Name)
}

func TestPlanService_Generate_MatchedAnchorAppendedWhenSkipped(t *testing.T) {
	pool := examplePool()
	castleID := pool[1].ID.String()
	marketID := pool[2].ID.String()
	planner := &fakePlanner{
		complete: func(_ context.Context, _ string) (string, error) {
			return fmt.Sprintf(`{"title":"Day","summary":"s","stops":[{"place_id":%q,"planned_time":"10:00","duration_minutes":90}]}`, castleID), nil
		},
	}
	planRepo, _ := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(pool), &mockSegmentRepo{}, planner)

	result, err := svc.GeneratePlan(context.Background(), uuid.New().String(), "user-1", "", "I want to visit the market.")

	require.NoError(t, err)
	require.Len(t, result.Plan.Stops, 2)
	assert.Equal(t, marketID, result.Plan.Stops[1].Place.ID)
}

func TestPlanService_Generate_EmptyPoolPersistsEmptyPlan(t *testing.T) {
	planRepo, store := inMemoryUpsert()
	svc := newPlanService(planRepo, poolPlaceRepo(nil), &mockSegmentRepo{}, failingPlanner())

	result, err := svc.GeneratePlan(context.Background(), uuid.New().String(), "user-1", "", "")

	require.NoError(t, err)
	assert.Empty(t, result.Plan.Stops)
	assert.NotEmpty(t, result.Message)
	assert.Len(t, store, 1, "the empty plan must still be persisted")
}

// ---- store operations ------------------------------------------------------

func TestPlanService_UpdateStatus_RejectsUnknownValue(t *testing.T) {
	svc := newPlanService(&mockPlanRepo{}, &mockPlaceRepo{}, &mockSegmentRepo{}, failingPlanner())

	_, err := svc.UpdateStatus(context.Background(), uuid.New().String(), "locked")

	assert.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestPlanService_UpdateStatus_NotFound(t *testing.T) {
	svc := newPlanService(&mockPlanRepo{}, &mockPlaceRepo{}, &mockSegmentRepo{}, failingPlanner())

	_, err := svc.UpdateStatus(context.Background(), uuid.New().String(), "completed")

	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}

func TestPlanService_GetToday_NotFound(t *testing.T) {
	svc := newPlanService(&mockPlanRepo{}, &mockPlaceRepo{}, &mockSegmentRepo{}, failingPlanner())

	_, err := svc.GetToday(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}

func TestPlanService_SwapStop_UnknownReplacement(t *testing.T) {
	svc := newPlanService(&mockPlanRepo{}, &mockPlaceRepo{}, &mockSegmentRepo{}, failingPlanner())

	_, err := svc.SwapStop(context.Background(), uuid.New().String(), request_models.SwapStopRequest{
		FromPlaceID: uuid.New().String(),
		ToPlaceID:   uuid.New().String(),
	})

	assert.ErrorIs(t, err, utils.ErrPlaceNotFound)
}
