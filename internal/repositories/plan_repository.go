package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"roamday/internal/models/db_models"
)

// IPlanRepository is the persistence surface for daily plans. One row exists
// per (trip_id, plan_date); Upsert does a full replace of the conflicting row
// (last-write-wins, no per-field merge). The unique index is the only guard
// against concurrent generates for the same day.
type IPlanRepository interface {
	Upsert(ctx context.Context, plan *db_models.DailyPlan) (*db_models.DailyPlan, error)
	GetPlanById(ctx context.Context, planID string) (*db_models.DailyPlan, error)
	GetPlanByDate(ctx context.Context, tripID string, date time.Time) (*db_models.DailyPlan, error)
	GetAllPlansForTrip(ctx context.Context, tripID string) ([]db_models.DailyPlan, error)
	UpdateStops(ctx context.Context, planID string, stops db_models.StopList, durationMinutes, distanceMeters int) (*db_models.DailyPlan, error)
	UpdateStatus(ctx context.Context, planID string, status db_models.PlanStatus) (*db_models.DailyPlan, error)
	AddStop(ctx context.Context, planID string, stop db_models.Stop) (*db_models.DailyPlan, error)
	RemoveStop(ctx context.Context, planID string, placeID string) (*db_models.DailyPlan, error)
	SwapStop(ctx context.Context, planID string, fromPlaceID, toPlaceID, toPlaceName string) (*db_models.DailyPlan, error)
	DeletePlan(ctx context.Context, planID string) error
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Upsert(ctx context.Context, plan *db_models.DailyPlan) (*db_models.DailyPlan, error) {
	plan.PlanDate = dateOnly(plan.PlanDate)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "trip_id"}, {Name: "plan_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"segment_id", "title", "summary", "stops",
				"total_duration_minutes", "total_distance_meters",
				"status", "updated_at",
			}),
		}).
		Create(plan).Error
	if err != nil {
		return nil, err
	}

	// Re-read so callers always see the surviving row's id, which is stable
	// across repeated upserts for the same (trip, date).
	return r.GetPlanByDate(ctx, plan.TripID.String(), plan.PlanDate)
}

func (r *planRepository) GetPlanById(ctx context.Context, planID string) (*db_models.DailyPlan, error) {
	var plan db_models.DailyPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetPlanByDate(ctx context.Context, tripID string, date time.Time) (*db_models.DailyPlan, error) {
	var plan db_models.DailyPlan
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND plan_date = ?", tripID, dateOnly(date)).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetAllPlansForTrip(ctx context.Context, tripID string) ([]db_models.DailyPlan, error) {
	var plans []db_models.DailyPlan
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("plan_date ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) UpdateStops(ctx context.Context, planID string, stops db_models.StopList, durationMinutes, distanceMeters int) (*db_models.DailyPlan, error) {
	return r.mutate(ctx, planID, func(plan *db_models.DailyPlan) {
		plan.Stops = stops.Resequence()
		plan.TotalDurationMinutes = durationMinutes
		plan.TotalDistanceMeters = distanceMeters
	})
}

func (r *planRepository) UpdateStatus(ctx context.Context, planID string, status db_models.PlanStatus) (*db_models.DailyPlan, error) {
	return r.mutate(ctx, planID, func(plan *db_models.DailyPlan) {
		plan.Status = status
	})
}

func (r *planRepository) AddStop(ctx context.Context, planID string, stop db_models.Stop) (*db_models.DailyPlan, error) {
	return r.mutate(ctx, planID, func(plan *db_models.DailyPlan) {
		plan.Stops = plan.Stops.Append(stop)
		plan.TotalDurationMinutes = plan.Stops.TotalDuration()
	})
}

func (r *planRepository) RemoveStop(ctx context.Context, planID string, placeID string) (*db_models.DailyPlan, error) {
	return r.mutate(ctx, planID, func(plan *db_models.DailyPlan) {
		stops, _ := plan.Stops.RemoveByPlaceID(placeID)
		plan.Stops = stops
		plan.TotalDurationMinutes = plan.Stops.TotalDuration()
	})
}

func (r *planRepository) SwapStop(ctx context.Context, planID string, fromPlaceID, toPlaceID, toPlaceName string) (*db_models.DailyPlan, error) {
	return r.mutate(ctx, planID, func(plan *db_models.DailyPlan) {
		stops, _ := plan.Stops.SwapPlaceID(fromPlaceID, toPlaceID, toPlaceName)
		plan.Stops = stops
	})
}

func (r *planRepository) DeletePlan(ctx context.Context, planID string) error {
	return r.db.WithContext(ctx).Delete(&db_models.DailyPlan{}, "id = ?", planID).Error
}

// mutate loads the plan, applies fn, and saves the whole row in one
// transaction. Save runs the BaseModel hooks, so updated_at is bumped.
func (r *planRepository) mutate(ctx context.Context, planID string, fn func(*db_models.DailyPlan)) (*db_models.DailyPlan, error) {
	var plan db_models.DailyPlan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&plan, "id = ?", planID).Error; err != nil {
			return err
		}
		fn(&plan)
		return tx.Save(&plan).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
