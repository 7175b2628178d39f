package plan_fx

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"roamday/internal/repositories"
	"roamday/internal/services"
	"roamday/pkg/utils"
)

var Module = fx.Provide(providePlanRepo, providePlanService)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(
	planRepo repositories.IPlanRepository,
	placeRepo repositories.PlaceRepository,
	segmentService services.SegmentServiceInterface,
	planner utils.PlannerClientInterface,
) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, placeRepo, segmentService, planner, time.Now)
}
