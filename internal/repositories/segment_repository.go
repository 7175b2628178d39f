package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"roamday/internal/models/db_models"
)

type SegmentRepository interface {
	CreateSegment(ctx context.Context, segment *db_models.TripSegment) error
	UpdateSegment(ctx context.Context, segment *db_models.TripSegment) error
	DeleteSegment(ctx context.Context, segmentID string) error
	GetSegmentById(ctx context.Context, segmentID string) (*db_models.TripSegment, error)
	ListSegmentsByTrip(ctx context.Context, tripID string) ([]db_models.TripSegment, error)
}

type segmentRepository struct {
	db *gorm.DB
}

func NewSegmentRepository(db *gorm.DB) SegmentRepository {
	return &segmentRepository{db: db}
}

func (r *segmentRepository) CreateSegment(ctx context.Context, segment *db_models.TripSegment) error {
	return r.db.WithContext(ctx).Create(segment).Error
}

func (r *segmentRepository) UpdateSegment(ctx context.Context, segment *db_models.TripSegment) error {
	return r.db.WithContext(ctx).Save(segment).Error
}

func (r *segmentRepository) DeleteSegment(ctx context.Context, segmentID string) error {
	return r.db.WithContext(ctx).Delete(&db_models.TripSegment{}, "id = ?", segmentID).Error
}

func (r *segmentRepository) GetSegmentById(ctx context.Context, segmentID string) (*db_models.TripSegment, error) {
	var segment db_models.TripSegment
	err := r.db.WithContext(ctx).First(&segment, "id = ?", segmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &segment, nil
}

func (r *segmentRepository) ListSegmentsByTrip(ctx context.Context, tripID string) ([]db_models.TripSegment, error) {
	var segments []db_models.TripSegment
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("order_index ASC").
		Find(&segments).Error
	if err != nil {
		return nil, err
	}
	return segments, nil
}
