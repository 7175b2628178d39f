package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"roamday/internal/models/db_models"
	"roamday/internal/models/request_models"
	"roamday/internal/models/response_models"
	"roamday/internal/repositories"
	"roamday/pkg/utils"
)

type PlanServiceInterface interface {
	GeneratePlan(ctx context.Context, tripID, userID, dateStr, prompt string) (*response_models.GenerateResult, error)
	GetToday(ctx context.Context, tripID string) (*response_models.PlanResponse, error)
	GetByDate(ctx context.Context, tripID, dateStr string) (*response_models.PlanResponse, error)
	GetAll(ctx context.Context, tripID string) ([]response_models.PlanResponse, error)
	GetById(ctx context.Context, planID string) (*response_models.PlanResponse, error)
	UpdateStops(ctx context.Context, planID string, req request_models.UpdateStopsRequest) (*response_models.PlanResponse, error)
	UpdateStatus(ctx context.Context, planID string, status string) (*response_models.PlanResponse, error)
	AddStop(ctx context.Context, planID string, req request_models.AddStopRequest) (*response_models.PlanResponse, error)
	RemoveStop(ctx context.Context, planID string, placeID string) (*response_models.PlanResponse, error)
	SwapStop(ctx context.Context, planID string, req request_models.SwapStopRequest) (*response_models.PlanResponse, error)
	DeletePlan(ctx context.Context, planID string) error
}

type PlanService struct {
	planRepo       repositories.IPlanRepository
	placeRepo      repositories.PlaceRepository
	segmentService SegmentServiceInterface
	planner        utils.PlannerClientInterface
	now            func() time.Time
}

func NewPlanService(
	planRepo repositories.IPlanRepository,
	placeRepo repositories.PlaceRepository,
	segmentService SegmentServiceInterface,
	planner utils.PlannerClientInterface,
	now func() time.Time,
) PlanServiceInterface {
	return &PlanService{
		planRepo:       planRepo,
		placeRepo:      placeRepo,
		segmentService: segmentService,
		planner:        planner,
		now:            now,
	}
}

// GeneratePlan builds and persists the itinerary for one (trip, date). The
// optimizer is tried first; any failure falls through to the deterministic
// heuristic, so generation itself cannot fail on the optimizer's account.
// Repeated calls for the same day replace the stored plan in place.
func (p *PlanService) GeneratePlan(ctx context.Context, tripID, userID, dateStr, prompt string) (*response_models.GenerateResult, error) {
	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	var segCtx *SegmentContext
	var date time.Time
	if dateStr != "" {
		date, err = utils.ParseDate(dateStr)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		segCtx, err = p.segmentService.ResolveForDate(ctx, tripID, date)
	} else {
		segCtx, date, err = p.segmentService.ResolveToday(ctx, tripID)
	}
	if err != nil {
		return nil, err
	}

	pool, err := p.candidatePool(ctx, tripID, segCtx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	city := ""
	var segmentID *uuid.UUID
	tz := ""
	if segCtx.Segment != nil {
		city = segCtx.Segment.City
		id := segCtx.Segment.ID
		segmentID = &id
		tz = segCtx.Segment.Timezone
	}

	plan := &db_models.DailyPlan{
		TripID:    tripUUID,
		SegmentID: segmentID,
		PlanDate:  date,
		Status:    db_models.PlanStatusActive,
		Stops:     db_models.StopList{},
	}

	if len(pool) == 0 {
		// An exhausted pool is a completion state, not an error; the empty
		// plan is still persisted so the day stays idempotent.
		plan.Title = fallbackTitle(city)
		plan.Summary = "All saved places for this day are already visited."
		saved, err := p.planRepo.Upsert(ctx, plan)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		resp, err := p.populate(ctx, saved, segCtx)
		if err != nil {
			return nil, err
		}
		return &response_models.GenerateResult{
			Plan:    resp,
			Message: "You've been everywhere on your list! Save a few more places and I'll plan your next day.",
		}, nil
	}

	anchors := ParseAnchors(prompt)

	stops, title, summary, plannerErr := p.plannerStops(ctx, pool, segCtx, anchors, city)
	if plannerErr != nil {
		// Recovered locally, logged only (§ fallback contract).
		log.Printf("planner unavailable for trip %s (user %s), using fallback: %v", tripID, userID, plannerErr)
		hour := p.now().In(utils.LocationOrUTC(tz)).Hour()
		stops = buildFallbackStops(pool, hour)
		title = fallbackTitle(city)
		summary = fallbackSummary(city, len(stops))
	}

	plan.Title = title
	plan.Summary = summary
	plan.Stops = stops.Resequence()
	plan.TotalDurationMinutes = stops.TotalDuration()
	plan.TotalDistanceMeters = fallbackDistanceMeters

	saved, err := p.planRepo.Upsert(ctx, plan)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp, err := p.populate(ctx, saved, segCtx)
	if err != nil {
		return nil, err
	}
	return &response_models.GenerateResult{
		Plan:    resp,
		Message: fmt.Sprintf("Planned %d stops for you.", len(saved.Stops)),
	}, nil
}

func (p *PlanService) GetToday(ctx context.Context, tripID string) (*response_models.PlanResponse, error) {
	segCtx, today, err := p.segmentService.ResolveToday(ctx, tripID)
	if err != nil {
		return nil, err
	}
	plan, err := p.planRepo.GetPlanByDate(ctx, tripID, today)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return p.populate(ctx, plan, segCtx)
}

func (p *PlanService) GetByDate(ctx context.Context, tripID, dateStr string) (*response_models.PlanResponse, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	plan, err := p.planRepo.GetPlanByDate(ctx, tripID, date)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	segCtx, err := p.segmentService.ResolveForDate(ctx, tripID, date)
	if err != nil {
		return nil, err
	}
	return p.populate(ctx, plan, segCtx)
}

func (p *PlanService) GetAll(ctx context.Context, tripID string) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetAllPlansForTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	placesByID, err := p.placesByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, *response_models.BuildPlanResponse(&plans[i], placesByID))
	}
	return out, nil
}

func (p *PlanService) GetById(ctx context.Context, planID string) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return p.populate(ctx, plan, nil)
}

func (p *PlanService) UpdateStops(ctx context.Context, planID string, req request_models.UpdateStopsRequest) (*response_models.PlanResponse, error) {
	stops := make(db_models.StopList, 0, len(req.Stops))
	for _, payload := range req.Stops {
		stops = append(stops, stopFromPayload(payload))
	}

	duration := req.TotalDurationMinutes
	if duration == 0 {
		duration = stops.TotalDuration()
	}
	distance := req.TotalDistanceMeters
	if distance == 0 {
		distance = fallbackDistanceMeters
	}

	plan, err := p.planRepo.UpdateStops(ctx, planID, stops, duration, distance)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return p.populate(ctx, plan, nil)
}

func (p *PlanService) UpdateStatus(ctx context.Context, planID string, status string) (*response_models.PlanResponse, error) {
	if !db_models.ValidPlanStatus(status) {
		return nil, utils.ErrInvalidStatus
	}
	plan, err := p.planRepo.UpdateStatus(ctx, planID, db_models.PlanStatus(status))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return p.populate(ctx, plan, nil)
}

func (p *PlanService) AddStop(ctx context.Context, planID string, req request_models.AddStopRequest) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.AddStop(ctx, planID, stopFromPayload(req.StopPayload))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return p.populate(ctx, plan, nil)
}

func (p *PlanService) RemoveStop(ctx context.Context, planID string, placeID string) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.RemoveStop(ctx, planID, placeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return p.populate(ctx, plan, nil)
}

func (p *PlanService) SwapStop(ctx context.Context, planID string, req request_models.SwapStopRequest) (*response_models.PlanResponse, error) {
	toPlace, err := p.placeRepo.GetPlaceById(ctx, req.ToPlaceID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if toPlace == nil {
		return nil, utils.ErrPlaceNotFound
	}

	plan, err := p.planRepo.SwapStop(ctx, planID, req.FromPlaceID, req.ToPlaceID, toPlace.Name)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return p.populate(ctx, plan, nil)
}

func (p *PlanService) DeletePlan(ctx context.Context, planID string) error {
	plan, err := p.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if plan == nil {
		return utils.ErrPlanNotFound
	}
	if err := p.planRepo.DeletePlan(ctx, planID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ---- optimizer path --------------------------------------------------------

type plannerPlan struct {
	Title   string            `json:"title"`
	Summary string            `json:"summary"`
	Stops   []plannerPlanStop `json:"stops"`
}

type plannerPlanStop struct {
	PlaceID         string `json:"place_id"`
	PlannedTime     string `json:"planned_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

// plannerStops runs the external optimizer and validates its output. Stops
// referencing unknown place ids are silently dropped; zero surviving stops is
// a failure so the caller falls back.
func (p *PlanService) plannerStops(
	ctx context.Context,
	pool []db_models.SavedPlace,
	segCtx *SegmentContext,
	anchors []Anchor,
	city string,
) (db_models.StopList, string, string, error) {
	raw, err := p.planner.CompletePlanJSON(ctx, buildPlannerPrompt(pool, segCtx, anchors, city))
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", utils.ErrPlannerFailure, err)
	}

	var parsed plannerPlan
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, "", "", fmt.Errorf("%w: malformed response: %v", utils.ErrPlannerFailure, err)
	}

	poolByID := make(map[string]db_models.SavedPlace, len(pool))
	for _, place := range pool {
		poolByID[place.ID.String()] = place
	}

	stops := db_models.StopList{}
	for _, ps := range parsed.Stops {
		place, ok := poolByID[ps.PlaceID]
		if !ok {
			continue
		}
		duration := ps.DurationMinutes
		if duration <= 0 {
			duration = 60
		}
		stops = append(stops, db_models.Stop{
			PlaceID:         ps.PlaceID,
			PlaceName:       place.Name,
			PlannedTime:     ps.PlannedTime,
			DurationMinutes: duration,
			Notes:           ps.Notes,
		})
	}
	if len(stops) == 0 {
		return nil, "", "", fmt.Errorf("%w: no valid stops in response", utils.ErrPlannerFailure)
	}

	stops = representAnchors(stops, anchors, pool)

	title := parsed.Title
	if title == "" {
		title = fallbackTitle(city)
	}
	summary := parsed.Summary
	if summary == "" {
		summary = fallbackSummary(city, len(stops))
	}
	return stops, title, summary, nil
}

// representAnchors guarantees every user anchor shows up in the result: a
// pool match is appended when the optimizer skipped it, and anchors with no
// pool match at all become placeholder stops with the user_request sentinel.
func representAnchors(stops db_models.StopList, anchors []Anchor, pool []db_models.SavedPlace) db_models.StopList {
	for _, anchor := range anchors {
		match := matchPoolByName(pool, anchor.Activity)
		if match != nil {
			present := false
			for _, stop := range stops {
				if stop.PlaceID == match.ID.String() {
					present = true
					break
				}
			}
			if !present {
				stops = append(stops, db_models.Stop{
					PlaceID:         match.ID.String(),
					PlaceName:       match.Name,
					PlannedTime:     anchorTime(anchor),
					DurationMinutes: 60,
				})
			}
			continue
		}
		stops = append(stops, db_models.Stop{
			PlaceID:         db_models.PlaceIDUserRequest,
			PlaceName:       anchor.Activity,
			PlannedTime:     anchorTime(anchor),
			DurationMinutes: 60,
			Notes:           "Requested by you",
		})
	}
	return stops
}

func buildPlannerPrompt(pool []db_models.SavedPlace, segCtx *SegmentContext, anchors []Anchor, city string) string {
	var b strings.Builder

	b.WriteString("Plan one travel day. Return JSON only, matching exactly:\n")
	b.WriteString(`{"title":"string","summary":"string","stops":[{"place_id":"<ID from list>","planned_time":"09:00","duration_minutes":90,"notes":"string"}]}` + "\n\n")

	if city != "" {
		fmt.Fprintf(&b, "City: %s", city)
		if segCtx != nil && segCtx.Segment != nil {
			fmt.Fprintf(&b, " (day %d of %d)", segCtx.DayNumber, segCtx.TotalDays)
		}
		b.WriteString("\n")
	}

	b.WriteString("Candidate places (use these IDs only):\n")
	for _, place := range pool {
		fmt.Fprintf(&b, "- ID:%s | Name:%s | Category:%s | Rating:%.1f | MustVisit:%t\n",
			place.ID.String(), place.Name, place.Category, place.Rating, place.MustVisit)
	}

	if len(anchors) > 0 {
		b.WriteString("\nThe traveler asked for these and they must appear in the plan:\n")
		for _, anchor := range anchors {
			fmt.Fprintf(&b, "- %s", anchor.Activity)
			if anchor.Time != "" {
				fmt.Fprintf(&b, " at %s", anchor.Time)
			} else if anchor.TimeOfDay != "" {
				fmt.Fprintf(&b, " in the %s", anchor.TimeOfDay)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nHard constraints:\n")
	b.WriteString("- 4 to 6 stops, times between 09:00 and 21:00, formatted HH:MM, no overlaps.\n")
	b.WriteString("- Prefer must-visit and higher-rated places; mix categories.\n")
	b.WriteString("- JSON only. No comments, no markdown.\n")

	return b.String()
}

func anchorTime(anchor Anchor) string {
	if anchor.Time != "" {
		return anchor.Time
	}
	switch anchor.TimeOfDay {
	case "morning":
		return "09:00"
	case "afternoon":
		return "14:00"
	case "evening":
		return "19:00"
	default:
		return "12:00"
	}
}

// ---- shared helpers --------------------------------------------------------

// looseMatch is bidirectional case-insensitive substring containment. Both
// the mutator and anchor resolution depend on exactly these semantics.
func looseMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func matchPoolByName(pool []db_models.SavedPlace, text string) *db_models.SavedPlace {
	for i := range pool {
		if looseMatch(pool[i].Name, text) {
			return &pool[i]
		}
	}
	return nil
}

func (p *PlanService) candidatePool(ctx context.Context, tripID string, segCtx *SegmentContext) ([]db_models.SavedPlace, error) {
	if segCtx != nil && segCtx.Segment != nil {
		return p.placeRepo.FindByCity(ctx, segCtx.Segment)
	}
	return p.placeRepo.FindByTrip(ctx, tripID, db_models.PlaceStatusSaved)
}

func (p *PlanService) placesByID(ctx context.Context, tripID string) (map[string]db_models.SavedPlace, error) {
	places, err := p.placeRepo.FindByTrip(ctx, tripID, "")
	if err != nil {
		return nil, err
	}
	byID := make(map[string]db_models.SavedPlace, len(places))
	for _, place := range places {
		byID[place.ID.String()] = place
	}
	return byID, nil
}

func (p *PlanService) populate(ctx context.Context, plan *db_models.DailyPlan, segCtx *SegmentContext) (*response_models.PlanResponse, error) {
	placesByID, err := p.placesByID(ctx, plan.TripID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	resp := response_models.BuildPlanResponse(plan, placesByID)
	if segCtx != nil {
		resp.DayContext = &response_models.SegmentContextResponse{
			Segment:       response_models.BuildSegmentResponse(segCtx.Segment),
			NextSegment:   response_models.BuildSegmentResponse(segCtx.NextSegment),
			DayNumber:     segCtx.DayNumber,
			TotalDays:     segCtx.TotalDays,
			DaysRemaining: segCtx.DaysRemaining,
			IsTransitDay:  segCtx.IsTransitDay,
		}
	}
	return resp, nil
}

func stopFromPayload(payload request_models.StopPayload) db_models.Stop {
	return db_models.Stop{
		PlaceID:         payload.PlaceID,
		PlaceName:       payload.PlaceName,
		PlannedTime:     payload.PlannedTime,
		DurationMinutes: payload.DurationMinutes,
		Notes:           payload.Notes,
	}
}
