package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"roamday/cmd/fx/assistant_fx"
	"roamday/cmd/fx/controllers_fx"
	"roamday/cmd/fx/db_fx"
	"roamday/cmd/fx/place_fx"
	"roamday/cmd/fx/plan_fx"
	"roamday/cmd/fx/planner_fx"
	"roamday/cmd/fx/segment_fx"
	"roamday/internal/api/controllers"
	"roamday/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		db_fx.Module,
		segment_fx.Module,
		place_fx.Module,
		planner_fx.Module,
		plan_fx.Module,
		assistant_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	segmentController *controllers.SegmentController,
	placeController *controllers.PlaceController,
	planController *controllers.PlanController,
	assistantController *controllers.AssistantController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.JWTAuthMiddleware())

	RegisterRoutes(r, segmentController, placeController, planController, assistantController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	segmentController *controllers.SegmentController,
	placeController *controllers.PlaceController,
	planController *controllers.PlanController,
	assistantController *controllers.AssistantController) {

	segmentsGroup := r.Group("/segments")
	segmentsGroup.POST("", segmentController.CreateSegment)
	segmentsGroup.PUT("/:segmentId", segmentController.UpdateSegment)
	segmentsGroup.DELETE("/:segmentId", segmentController.DeleteSegment)
	segmentsGroup.GET("/trip/:tripId", segmentController.ListSegments)
	segmentsGroup.GET("/trip/:tripId/current", segmentController.GetCurrentSegment)

	placesGroup := r.Group("/places")
	placesGroup.GET("/trip/:tripId", placeController.ListByTrip)
	placesGroup.GET("/segment/:segmentId", placeController.ListForSegment)

	plansGroup := r.Group("/plans")
	plansGroup.POST("/generate", planController.GeneratePlan)
	plansGroup.GET("/today/:tripId", planController.GetToday)
	plansGroup.GET("/by-date/:tripId", planController.GetByDate)
	plansGroup.GET("/all/:tripId", planController.GetAll)
	plansGroup.PUT("/:planId/stops", planController.UpdateStops)
	plansGroup.PATCH("/:planId/status", planController.UpdateStatus)
	plansGroup.POST("/:planId/stops", planController.AddStop)
	plansGroup.DELETE("/:planId/stops/:placeId", planController.RemoveStop)
	plansGroup.PUT("/:planId/swap", planController.SwapStop)
	plansGroup.DELETE("/:planId", planController.DeletePlan)

	assistantGroup := r.Group("/assistant")
	assistantGroup.POST("/message", assistantController.HandleMessage)
}
