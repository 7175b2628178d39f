package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"roamday/internal/models/db_models"
)

type PlaceRepository interface {
	GetPlaceById(ctx context.Context, placeID string) (*db_models.SavedPlace, error)
	// FindByTrip lists a trip's saved places, optionally filtered by status.
	FindByTrip(ctx context.Context, tripID string, statusFilter string) ([]db_models.SavedPlace, error)
	// FindByCity lists the unvisited places belonging to a segment, either
	// linked to it directly or matching its city name.
	FindByCity(ctx context.Context, segment *db_models.TripSegment) ([]db_models.SavedPlace, error)
	ListUnassigned(ctx context.Context, tripID string) ([]db_models.SavedPlace, error)
	AssignSegment(ctx context.Context, placeID string, segmentID string) error
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) GetPlaceById(ctx context.Context, placeID string) (*db_models.SavedPlace, error) {
	var place db_models.SavedPlace
	err := r.db.WithContext(ctx).First(&place, "id = ?", placeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) FindByTrip(ctx context.Context, tripID string, statusFilter string) ([]db_models.SavedPlace, error) {
	q := r.db.WithContext(ctx).Where("trip_id = ?", tripID)
	if statusFilter != "" {
		q = q.Where("status = ?", statusFilter)
	}
	var places []db_models.SavedPlace
	if err := q.Order("created_at ASC").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) FindByCity(ctx context.Context, segment *db_models.TripSegment) ([]db_models.SavedPlace, error) {
	pattern := "%" + strings.ToLower(segment.City) + "%"
	var places []db_models.SavedPlace
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND status <> ?", segment.TripID, db_models.PlaceStatusVisited).
		Where("segment_id = ? OR LOWER(city) LIKE ?", segment.ID, pattern).
		Order("created_at ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListUnassigned(ctx context.Context, tripID string) ([]db_models.SavedPlace, error) {
	var places []db_models.SavedPlace
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND segment_id IS NULL", tripID).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) AssignSegment(ctx context.Context, placeID string, segmentID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.SavedPlace{}).
		Where("id = ?", placeID).
		Update("segment_id", segmentID).Error
}
