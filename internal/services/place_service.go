package services

import (
	"context"

	"roamday/internal/models/db_models"
	"roamday/internal/models/response_models"
	"roamday/internal/repositories"
	"roamday/pkg/utils"
)

type PlaceServiceInterface interface {
	ListByTrip(ctx context.Context, tripID string, statusFilter string) ([]response_models.PlaceSummary, error)
	ListForSegment(ctx context.Context, segmentID string) ([]response_models.PlaceSummary, error)
}

type PlaceService struct {
	placeRepo   repositories.PlaceRepository
	segmentRepo repositories.SegmentRepository
}

func NewPlaceService(placeRepo repositories.PlaceRepository, segmentRepo repositories.SegmentRepository) PlaceServiceInterface {
	return &PlaceService{placeRepo: placeRepo, segmentRepo: segmentRepo}
}

func (s *PlaceService) ListByTrip(ctx context.Context, tripID string, statusFilter string) ([]response_models.PlaceSummary, error) {
	places, err := s.placeRepo.FindByTrip(ctx, tripID, statusFilter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildPlaceSummaries(places), nil
}

func (s *PlaceService) ListForSegment(ctx context.Context, segmentID string) ([]response_models.PlaceSummary, error) {
	segment, err := s.segmentRepo.GetSegmentById(ctx, segmentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if segment == nil {
		return nil, utils.ErrSegmentNotFound
	}

	places, err := s.placeRepo.FindByCity(ctx, segment)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildPlaceSummaries(places), nil
}

func buildPlaceSummaries(places []db_models.SavedPlace) []response_models.PlaceSummary {
	out := make([]response_models.PlaceSummary, 0, len(places))
	for _, place := range places {
		out = append(out, response_models.PlaceSummary{
			ID:        place.ID.String(),
			Name:      place.Name,
			Category:  place.Category,
			Rating:    place.Rating,
			MustVisit: place.MustVisit,
		})
	}
	return out
}
