package services_test

import (
	"context"
	"time"

	"roamday/internal/models/db_models"
	"roamday/internal/repositories"
)

// ---- hand-written test doubles ---------------------------------------------

type mockSegmentRepo struct {
	createSegment      func(ctx context.Context, segment *db_models.TripSegment) error
	updateSegment      func(ctx context.Context, segment *db_models.TripSegment) error
	deleteSegment      func(ctx context.Context, segmentID string) error
	getSegmentById     func(ctx context.Context, segmentID string) (*db_models.TripSegment, error)
	listSegmentsByTrip func(ctx context.Context, tripID string) ([]db_models.TripSegment, error)
}

func (m *mockSegmentRepo) CreateSegment(ctx context.Context, segment *db_models.TripSegment) error {
	if m.createSegment != nil {
		return m.createSegment(ctx, segment)
	}
	return nil
}
func (m *mockSegmentRepo) UpdateSegment(ctx context.Context, segment *db_models.TripSegment) error {
	if m.updateSegment != nil {
		return m.updateSegment(ctx, segment)
	}
	return nil
}
func (m *mockSegmentRepo) DeleteSegment(ctx context.Context, segmentID string) error {
	if m.deleteSegment != nil {
		return m.deleteSegment(ctx, segmentID)
	}
	return nil
}
func (m *mockSegmentRepo) GetSegmentById(ctx context.Context, segmentID string) (*db_models.TripSegment, error) {
	if m.getSegmentById != nil {
		return m.getSegmentById(ctx, segmentID)
	}
	return nil, nil
}
func (m *mockSegmentRepo) ListSegmentsByTrip(ctx context.Context, tripID string) ([]db_models.TripSegment, error) {
	if m.listSegmentsByTrip != nil {
		return m.listSegmentsByTrip(ctx, tripID)
	}
	return nil, nil
}

var _ repositories.SegmentRepository = (*mockSegmentRepo)(nil)

type mockPlaceRepo struct {
	getPlaceById   func(ctx context.Context, placeID string) (*db_models.SavedPlace, error)
	findByTrip     func(ctx context.Context, tripID string, statusFilter string) ([]db_models.SavedPlace, error)
	findByCity     func(ctx context.Context, segment *db_models.TripSegment) ([]db_models.SavedPlace, error)
	listUnassigned func(ctx context.Context, tripID string) ([]db_models.SavedPlace, error)
	assignSegment  func(ctx context.Context, placeID string, segmentID string) error
}

func (m *mockPlaceRepo) GetPlaceById(ctx context.Context, placeID string) (*db_models.SavedPlace, error) {
	if m.getPlaceById != nil {
		return m.getPlaceById(ctx, placeID)
	}
	return nil, nil
}
func (m *mockPlaceRepo) FindByTrip(ctx context.Context, tripID string, statusFilter string) ([]db_models.SavedPlace, error) {
	if m.findByTrip != nil {
		return m.findByTrip(ctx, tripID, statusFilter)
	}
	return nil, nil
}
func (m *mockPlaceRepo) FindByCity(ctx context.Context, segment *db_models.TripSegment) ([]db_models.SavedPlace, error) {
	if m.findByCity != nil {
		return m.findByCity(ctx, segment)
	}
	return nil, nil
}
func (m *mockPlaceRepo) ListUnassigned(ctx context.Context, tripID string) ([]db_models.SavedPlace, error) {
	if m.listUnassigned != nil {
		return m.listUnassigned(ctx, tripID)
	}
	return nil, nil
}
func (m *mockPlaceRepo) AssignSegment(ctx context.Context, placeID string, segmentID string) error {
	if m.assignSegment != nil {
		return m.assignSegment(ctx, placeID, segmentID)
	}
	return nil
}

var _ repositories.PlaceRepository = (*mockPlaceRepo)(nil)

type mockPlanRepo struct {
	upsert        func(ctx context.Context, plan *db_models.DailyPlan) (*db_models.DailyPlan, error)
	getPlanById   func(ctx context.Context, planID string) (*db_models.DailyPlan, error)
	getPlanByDate func(ctx context.Context, tripID string, date time.Time) (*db_models.DailyPlan, error)
	getAllForTrip func(ctx context.Context, tripID string) ([]db_models.DailyPlan, error)
	updateStops   func(ctx context.Context, planID string, stops db_models.StopList, durationMinutes, distanceMeters int) (*db_models.DailyPlan, error)
	updateStatus  func(ctx context.Context, planID string, status db_models.PlanStatus) (*db_models.DailyPlan, error)
	addStop       func(ctx context.Context, planID string, stop db_models.Stop) (*db_models.DailyPlan, error)
	removeStop    func(ctx context.Context, planID string, placeID string) (*db_models.DailyPlan, error)
	swapStop      func(ctx context.Context, planID string, fromPlaceID, toPlaceID, toPlaceName string) (*db_models.DailyPlan, error)
	deletePlan    func(ctx context.Context, planID string) error
}

func (m *mockPlanRepo) Upsert(ctx context.Context, plan *db_models.DailyPlan) (*db_models.DailyPlan, error) {
	if m.upsert != nil {
		return m.upsert(ctx, plan)
	}
	return plan, nil
}
func (m *mockPlanRepo) GetPlanById(ctx context.Context, planID string) (*db_models.DailyPlan, error) {
	if m.getPlanById != nil {
		return m.getPlanById(ctx, planID)
	}
	return nil, nil
}
func (m *mockPlanRepo) GetPlanByDate(ctx context.Context, tripID string, date time.Time) (*db_models.DailyPlan, error) {
	if m.getPlanByDate != nil {
		return m.getPlanByDate(ctx, tripID, date)
	}
	return nil, nil
}
func (m *mockPlanRepo) GetAllPlansForTrip(ctx context.Context, tripID string) ([]db_models.DailyPlan, error) {
	if m.getAllForTrip != nil {
		return m.getAllForTrip(ctx, tripID)
	}
	return nil, nil
}
func (m *mockPlanRepo) UpdateStops(ctx context.Context, planID string, stops db_models.StopList, durationMinutes, distanceMeters int) (*db_models.DailyPlan, error) {
	if m.updateStops != nil {
		return m.updateStops(ctx, planID, stops, durationMinutes, distanceMeters)
	}
	return nil, nil
}
func (m *mockPlanRepo) UpdateStatus(ctx context.Context, planID string, status db_models.PlanStatus) (*db_models.DailyPlan, error) {
	if m.updateStatus != nil {
		return m.updateStatus(ctx, planID, status)
	}
	return nil, nil
}
func (m *mockPlanRepo) AddStop(ctx context.Context, planID string, stop db_models.Stop) (*db_models.DailyPlan, error) {
	if m.addStop != nil {
		return m.addStop(ctx, planID, stop)
	}
	return nil, nil
}
func (m *mockPlanRepo) RemoveStop(ctx context.Context, planID string, placeID string) (*db_models.DailyPlan, error) {
	if m.removeStop != nil {
		return m.removeStop(ctx, planID, placeID)
	}
	return nil, nil
}
func (m *mockPlanRepo) SwapStop(ctx context.Context, planID string, fromPlaceID, toPlaceID, toPlaceName string) (*db_models.DailyPlan, error) {
	if m.swapStop != nil {
		return m.swapStop(ctx, planID, fromPlaceID, toPlaceID, toPlaceName)
	}
	return nil, nil
}
func (m *mockPlanRepo) DeletePlan(ctx context.Context, planID string) error {
	if m.deletePlan != nil {
		return m.deletePlan(ctx, planID)
	}
	return nil
}

var _ repositories.IPlanRepository = (*mockPlanRepo)(nil)

// fakePlanner substitutes the external optimizer.
type fakePlanner struct {
	complete func(ctx context.Context, prompt string) (string, error)
}

func (f *fakePlanner) CompletePlanJSON(ctx context.Context, prompt string) (string, error) {
	return f.complete(ctx, prompt)
}
