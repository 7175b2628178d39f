package assistant_fx

import (
	"go.uber.org/fx"
	"roamday/internal/repositories"
	"roamday/internal/services"
)

var Module = fx.Provide(provideAssistantService)

func provideAssistantService(
	planRepo repositories.IPlanRepository,
	placeRepo repositories.PlaceRepository,
	segmentService services.SegmentServiceInterface,
) services.AssistantServiceInterface {
	return services.NewAssistantService(planRepo, placeRepo, segmentService)
}
