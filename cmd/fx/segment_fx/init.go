package segment_fx

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"roamday/internal/repositories"
	"roamday/internal/services"
)

var Module = fx.Provide(provideSegmentRepo, provideSegmentService)

func provideSegmentRepo(db *gorm.DB) repositories.SegmentRepository {
	return repositories.NewSegmentRepository(db)
}

func provideSegmentService(
	segmentRepo repositories.SegmentRepository,
	placeRepo repositories.PlaceRepository,
) services.SegmentServiceInterface {
	return services.NewSegmentService(segmentRepo, placeRepo, time.Now)
}
