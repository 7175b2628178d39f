package controllers_fx

import (
	"go.uber.org/fx"
	"roamday/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSegmentController),
	fx.Provide(controllers.NewPlaceController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewAssistantController))
