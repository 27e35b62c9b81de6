// Package oracle provides travel-time/-distance estimates between two
// coordinates for a transport mode: a provider-backed implementation backed
// by a directions API, a deterministic fallback estimator, and a decorator
// that memoizes either behind an LRU cache.
package oracle

import (
	"context"
	"errors"
	"time"

	"itinerary/internal/geocore"
)

// Mode is a supported transport mode.
type Mode string

const (
	ModeTransit   Mode = "transit"
	ModeDriving   Mode = "driving"
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
)

// RouteDetail carries optional provider-specific context (e.g. a route
// summary string); nil when unavailable or unused.
type RouteDetail struct {
	Summary string
}

// TravelInfo is the result of a route lookup.
type TravelInfo struct {
	DurationMin int
	DistanceKm  float64
	Label       string
	RouteDetail *RouteDetail
	IsEstimated bool
}

// ErrOracleUnavailable is returned only when both the provider and the
// deterministic fallback fail — in practice the fallback cannot fail, so
// this surfaces an invalid input (e.g. a bad coordinate) reaching both.
var ErrOracleUnavailable = errors.New("oracle: unavailable")

// TravelOracle answers "how do I get from origin to destination". dependAt
// is optional; a zero time means "now".
type TravelOracle interface {
	Route(ctx context.Context, origin, destination geocore.Coordinate, mode Mode, dependAt time.Time) (TravelInfo, error)
}
