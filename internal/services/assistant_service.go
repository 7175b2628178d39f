package services

import (
	"context"
	"fmt"
	"strings"

	"roamday/internal/models/db_models"
	"roamday/internal/models/response_models"
	"roamday/internal/repositories"
	"roamday/pkg/utils"
)

// AssistantServiceInterface turns short free-text commands into edits on
// today's plan ("swap X with Y", "remove X", "add X", "lock plan").
type AssistantServiceInterface interface {
	HandleModification(ctx context.Context, tripID, userID, message string) (*response_models.AssistantReply, error)
}

type AssistantService struct {
	planRepo       repositories.IPlanRepository
	placeRepo      repositories.PlaceRepository
	segmentService SegmentServiceInterface
}

func NewAssistantService(
	planRepo repositories.IPlanRepository,
	placeRepo repositories.PlaceRepository,
	segmentService SegmentServiceInterface,
) AssistantServiceInterface {
	return &AssistantService{
		planRepo:       planRepo,
		placeRepo:      placeRepo,
		segmentService: segmentService,
	}
}

type intentKind int

const (
	intentNone intentKind = iota
	intentSwap
	intentRemove
	intentAdd
	intentLock
)

// intentFamilies are evaluated in fixed precedence when several keyword
// families match one message: swap > remove > add > lock.
var intentFamilies = []struct {
	kind     intentKind
	keywords []string
}{
	{intentSwap, []string{"swap", "replace"}},
	{intentRemove, []string{"remove", "delete", "skip"}},
	{intentAdd, []string{"add", "include"}},
	{intentLock, []string{"lock", "confirm", "save"}},
}

func classifyIntent(message string) intentKind {
	lower := strings.ToLower(message)
	for _, family := range intentFamilies {
		for _, keyword := range family.keywords {
			if strings.Contains(lower, keyword) {
				return family.kind
			}
		}
	}
	return intentNone
}

func (a *AssistantService) HandleModification(ctx context.Context, tripID, userID, message string) (*response_models.AssistantReply, error) {
	_, today, err := a.segmentService.ResolveToday(ctx, tripID)
	if err != nil {
		return nil, err
	}

	plan, err := a.planRepo.GetPlanByDate(ctx, tripID, today)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return &response_models.AssistantReply{
			Success: false,
			Message: "There's no plan for today yet. Ask me to generate one first.",
		}, nil
	}

	pool, err := a.placeRepo.FindByTrip(ctx, tripID, "")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	placesByID := make(map[string]db_models.SavedPlace, len(pool))
	for _, place := range pool {
		placesByID[place.ID.String()] = place
	}

	switch classifyIntent(message) {
	case intentSwap:
		return a.handleSwap(ctx, plan, pool, placesByID, message)
	case intentRemove:
		return a.handleRemove(ctx, plan, placesByID, message)
	case intentAdd:
		return a.handleAdd(ctx, plan, pool, placesByID, message)
	case intentLock:
		// "Locked" is an acknowledgement only; no status value exists for it
		// and the plan stays active.
		return &response_models.AssistantReply{
			Success: true,
			Message: "Locked in! Your plan for today is set. Have a great day!",
			Plan:    response_models.BuildPlanResponse(plan, placesByID),
		}, nil
	default:
		return &response_models.AssistantReply{
			Success: false,
			Message: "I can swap, remove, or add stops on today's plan. Tell me what you'd like to change.",
		}, nil
	}
}

func (a *AssistantService) handleSwap(
	ctx context.Context,
	plan *db_models.DailyPlan,
	pool []db_models.SavedPlace,
	placesByID map[string]db_models.SavedPlace,
	message string,
) (*response_models.AssistantReply, error) {
	target := findStopByMessage(plan.Stops, placesByID, message)
	if target == nil {
		return &response_models.AssistantReply{
			Success: false,
			Message: "Which stop would you like to swap? Tell me its name.",
		}, nil
	}

	category := ""
	if place, ok := placesByID[target.PlaceID]; ok {
		category = place.Category
	}

	planned := plannedPlaceIDs(plan.Stops)
	var candidates []db_models.SavedPlace
	for _, place := range pool {
		if planned[place.ID.String()] || place.Status == db_models.PlaceStatusVisited {
			continue
		}
		if strings.EqualFold(place.Category, category) {
			candidates = append(candidates, place)
		}
	}

	if len(candidates) == 0 {
		return &response_models.AssistantReply{
			Success: false,
			Message: fmt.Sprintf("I couldn't find an unplanned alternative for %s.", stopDisplayName(*target, placesByID)),
		}, nil
	}

	// The message may already name the replacement; only then do we mutate.
	for _, candidate := range candidates {
		if looseMatch(candidate.Name, message) {
			updated, err := a.planRepo.SwapStop(ctx, plan.ID.String(), target.PlaceID, candidate.ID.String(), candidate.Name)
			if err != nil {
				return nil, utils.ErrDatabaseError
			}
			return &response_models.AssistantReply{
				Success: true,
				Message: fmt.Sprintf("Swapped %s with %s.", stopDisplayName(*target, placesByID), candidate.Name),
				Plan:    response_models.BuildPlanResponse(updated, placesByID),
			}, nil
		}
	}

	names := make([]string, 0, 3)
	for _, candidate := range candidates {
		names = append(names, candidate.Name)
		if len(names) == 3 {
			break
		}
	}
	return &response_models.AssistantReply{
		Success: false,
		Message: fmt.Sprintf("What should replace %s? You could try: %s.", stopDisplayName(*target, placesByID), strings.Join(names, ", ")),
	}, nil
}

func (a *AssistantService) handleRemove(
	ctx context.Context,
	plan *db_models.DailyPlan,
	placesByID map[string]db_models.SavedPlace,
	message string,
) (*response_models.AssistantReply, error) {
	target := findStopByMessage(plan.Stops, placesByID, message)
	if target == nil {
		return &response_models.AssistantReply{
			Success: false,
			Message: "Which stop should I remove? Tell me its name.",
		}, nil
	}

	updated, err := a.planRepo.RemoveStop(ctx, plan.ID.String(), target.PlaceID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.AssistantReply{
		Success: true,
		Message: fmt.Sprintf("Removed %s from today's plan.", stopDisplayName(*target, placesByID)),
		Plan:    response_models.BuildPlanResponse(updated, placesByID),
	}, nil
}

func (a *AssistantService) handleAdd(
	ctx context.Context,
	plan *db_models.DailyPlan,
	pool []db_models.SavedPlace,
	placesByID map[string]db_models.SavedPlace,
	message string,
) (*response_models.AssistantReply, error) {
	planned := plannedPlaceIDs(plan.Stops)

	for _, place := range pool {
		if planned[place.ID.String()] || place.Status == db_models.PlaceStatusVisited {
			continue
		}
		if looseMatch(place.Name, message) {
			updated, err := a.planRepo.AddStop(ctx, plan.ID.String(), db_models.Stop{
				PlaceID:         place.ID.String(),
				PlaceName:       place.Name,
				DurationMinutes: 60,
			})
			if err != nil {
				return nil, utils.ErrDatabaseError
			}
			return &response_models.AssistantReply{
				Success: true,
				Message: fmt.Sprintf("Added %s to today's plan.", place.Name),
				Plan:    response_models.BuildPlanResponse(updated, placesByID),
			}, nil
		}
	}

	names := make([]string, 0, 5)
	for _, place := range pool {
		if planned[place.ID.String()] || place.Status == db_models.PlaceStatusVisited {
			continue
		}
		names = append(names, place.Name)
		if len(names) == 5 {
			break
		}
	}
	if len(names) == 0 {
		return &response_models.AssistantReply{
			Success: false,
			Message: "All your saved places are already planned or visited.",
		}, nil
	}
	return &response_models.AssistantReply{
		Success: false,
		Message: fmt.Sprintf("I couldn't match that to a saved place. You could add: %s.", strings.Join(names, ", ")),
	}, nil
}

// findStopByMessage picks the first stop whose resolved place name loosely
// matches the message (substring containment in either direction).
func findStopByMessage(stops db_models.StopList, placesByID map[string]db_models.SavedPlace, message string) *db_models.Stop {
	for i := range stops {
		if looseMatch(stopDisplayName(stops[i], placesByID), message) {
			return &stops[i]
		}
	}
	return nil
}

func stopDisplayName(stop db_models.Stop, placesByID map[string]db_models.SavedPlace) string {
	if place, ok := placesByID[stop.PlaceID]; ok {
		return place.Name
	}
	if stop.PlaceName != "" {
		return stop.PlaceName
	}
	return stop.Notes
}

func plannedPlaceIDs(stops db_models.StopList) map[string]bool {
	planned := make(map[string]bool, len(stops))
	for _, stop := range stops {
		if stop.PlaceID != "" {
			planned[stop.PlaceID] = true
		}
	}
	return planned
}
