package utils

import "errors"

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrSegmentNotFound = errors.New("segment not found")
	ErrPlaceNotFound   = errors.New("place not found")
	ErrInvalidStatus   = errors.New("invalid plan status")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDatabaseError   = errors.New("database error")

	// ErrPlannerFailure marks an external optimizer failure. It is recovered
	// locally by the fallback heuristic and never reaches a client.
	ErrPlannerFailure = errors.New("planner failure")
)
