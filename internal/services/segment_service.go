package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"roamday/internal/models/db_models"
	"roamday/internal/models/request_models"
	"roamday/internal/repositories"
	"roamday/pkg/utils"
)

// SegmentContext is the resolver output for one (trip, date) pair.
// Day numbers are 1-indexed; DaysRemaining is 0 on the last day.
type SegmentContext struct {
	Segment       *db_models.TripSegment
	NextSegment   *db_models.TripSegment
	DayNumber     int
	TotalDays     int
	DaysRemaining int
	IsTransitDay  bool
}

type SegmentServiceInterface interface {
	CreateSegment(ctx context.Context, req request_models.SegmentRequest) (*db_models.TripSegment, error)
	UpdateSegment(ctx context.Context, segmentID string, req request_models.SegmentRequest) (*db_models.TripSegment, error)
	DeleteSegment(ctx context.Context, segmentID string) error
	ListSegments(ctx context.Context, tripID string) ([]db_models.TripSegment, error)
	ResolveForDate(ctx context.Context, tripID string, date time.Time) (*SegmentContext, error)
	// ResolveToday resolves against today's date as seen in the trip's
	// timezone (the first segment's timezone, UTC when none is set).
	ResolveToday(ctx context.Context, tripID string) (*SegmentContext, time.Time, error)
}

type SegmentService struct {
	segmentRepo repositories.SegmentRepository
	placeRepo   repositories.PlaceRepository
	now         func() time.Time
}

func NewSegmentService(
	segmentRepo repositories.SegmentRepository,
	placeRepo repositories.PlaceRepository,
	now func() time.Time,
) SegmentServiceInterface {
	return &SegmentService{
		segmentRepo: segmentRepo,
		placeRepo:   placeRepo,
		now:         now,
	}
}

// ResolveSegments picks the active segment for a date. Segments are scanned
// in order_index order and the first containing segment wins, so overlapping
// ranges resolve to the lower order_index. A date with no containing segment
// is a transit day only when it falls strictly between two segments, not
// before or after the whole trip.
func ResolveSegments(segments []db_models.TripSegment, date time.Time) SegmentContext {
	if len(segments) == 0 {
		return SegmentContext{}
	}

	ordered := make([]db_models.TripSegment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	d := utils.DateOnly(date)

	var current *db_models.TripSegment
	for i := range ordered {
		start := utils.DateOnly(ordered[i].StartDate)
		end := utils.DateOnly(ordered[i].EndDate)
		if !d.Before(start) && !d.After(end) {
			current = &ordered[i]
			break
		}
	}

	var next *db_models.TripSegment
	for i := range ordered {
		start := utils.DateOnly(ordered[i].StartDate)
		if start.After(d) {
			if next == nil || start.Before(utils.DateOnly(next.StartDate)) {
				next = &ordered[i]
			}
		}
	}

	if current == nil {
		endedBefore := false
		for i := range ordered {
			if utils.DateOnly(ordered[i].EndDate).Before(d) {
				endedBefore = true
				break
			}
		}
		return SegmentContext{
			NextSegment:  next,
			IsTransitDay: endedBefore && next != nil,
		}
	}

	dayNumber := utils.DaysBetween(current.StartDate, d) + 1
	totalDays := utils.DaysBetween(current.StartDate, current.EndDate) + 1
	return SegmentContext{
		Segment:       current,
		NextSegment:   next,
		DayNumber:     dayNumber,
		TotalDays:     totalDays,
		DaysRemaining: totalDays - dayNumber,
	}
}

func (s *SegmentService) CreateSegment(ctx context.Context, req request_models.SegmentRequest) (*db_models.TripSegment, error) {
	segment, err := segmentFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.segmentRepo.CreateSegment(ctx, segment); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Adding a segment re-links unassigned saved places by city match.
	s.relinkPlaces(ctx, req.TripID)

	return segment, nil
}

func (s *SegmentService) UpdateSegment(ctx context.Context, segmentID string, req request_models.SegmentRequest) (*db_models.TripSegment, error) {
	existing, err := s.segmentRepo.GetSegmentById(ctx, segmentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing == nil {
		return nil, utils.ErrSegmentNotFound
	}

	updated, err := segmentFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.BaseModel = existing.BaseModel

	if err := s.segmentRepo.UpdateSegment(ctx, updated); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.relinkPlaces(ctx, req.TripID)

	return updated, nil
}

func (s *SegmentService) DeleteSegment(ctx context.Context, segmentID string) error {
	segment, err := s.segmentRepo.GetSegmentById(ctx, segmentID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if segment == nil {
		return utils.ErrSegmentNotFound
	}
	if err := s.segmentRepo.DeleteSegment(ctx, segmentID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SegmentService) ListSegments(ctx context.Context, tripID string) ([]db_models.TripSegment, error) {
	segments, err := s.segmentRepo.ListSegmentsByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return segments, nil
}

func (s *SegmentService) ResolveForDate(ctx context.Context, tripID string, date time.Time) (*SegmentContext, error) {
	segments, err := s.segmentRepo.ListSegmentsByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	segCtx := ResolveSegments(segments, date)
	return &segCtx, nil
}

func (s *SegmentService) ResolveToday(ctx context.Context, tripID string) (*SegmentContext, time.Time, error) {
	segments, err := s.segmentRepo.ListSegmentsByTrip(ctx, tripID)
	if err != nil {
		return nil, time.Time{}, utils.ErrDatabaseError
	}

	tz := ""
	if len(segments) > 0 {
		tz = segments[0].Timezone
	}
	today := utils.TodayIn(tz, s.now())

	segCtx := ResolveSegments(segments, today)
	return &segCtx, today, nil
}

// relinkPlaces assigns still-unassigned saved places to segments by loose
// city-name containment (either direction, case-insensitive). Failures are
// logged by the repo layer and do not fail the segment write.
func (s *SegmentService) relinkPlaces(ctx context.Context, tripID string) {
	places, err := s.placeRepo.ListUnassigned(ctx, tripID)
	if err != nil || len(places) == 0 {
		return
	}
	segments, err := s.segmentRepo.ListSegmentsByTrip(ctx, tripID)
	if err != nil {
		return
	}

	for _, place := range places {
		for _, segment := range segments {
			if cityMatches(place.City, segment.City) {
				_ = s.placeRepo.AssignSegment(ctx, place.ID.String(), segment.ID.String())
				break
			}
		}
	}
}

func cityMatches(placeCity, segmentCity string) bool {
	p := strings.ToLower(strings.TrimSpace(placeCity))
	c := strings.ToLower(strings.TrimSpace(segmentCity))
	if p == "" || c == "" {
		return false
	}
	return strings.Contains(p, c) || strings.Contains(c, p)
}

func segmentFromRequest(req request_models.SegmentRequest) (*db_models.TripSegment, error) {
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, utils.ErrInvalidInput
	}

	return &db_models.TripSegment{
		TripID:               tripID,
		City:                 req.City,
		Area:                 req.Area,
		Country:              req.Country,
		Timezone:             req.Timezone,
		StartDate:            start,
		EndDate:              end,
		AccommodationName:    req.AccommodationName,
		AccommodationAddress: req.AccommodationAddress,
		OrderIndex:           req.OrderIndex,
		Notes:                req.Notes,
	}, nil
}
