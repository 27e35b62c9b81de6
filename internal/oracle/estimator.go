package oracle

import (
	"context"
	"fmt"
	"math"
	"time"

	"itinerary/internal/geocore"
)

// speedProfile is the deterministic fallback tuning for a mode: an assumed
// free-flow speed, a detour factor applied to Haversine distance, and a
// time factor applied on top of the naive speed/distance duration to absorb
// traffic, stops, and transfers.
type speedProfile struct {
	speedKmh     float64
	distanceMult float64
	timeMult     float64
}

var defaultProfiles = map[Mode]speedProfile{
	ModeDriving:   {speedKmh: 40, distanceMult: 1.3, timeMult: 1.4},
	ModeTransit:   {speedKmh: 30, distanceMult: 1.2, timeMult: 1.3},
	ModeWalking:   {speedKmh: 5, distanceMult: 1.2, timeMult: 1.3},
	ModeBicycling: {speedKmh: 15, distanceMult: 1.2, timeMult: 1.3},
}

// Estimator is the deterministic fallback TravelOracle: distance via
// Haversine scaled by a mode-specific detour factor, duration from a
// mode-specific assumed speed scaled by a mode-specific time factor.
// This cannot fail for valid coordinates — it is the backstop that keeps
// the planner usable with no external directions API configured.
type Estimator struct {
	profiles map[Mode]speedProfile
}

// NewEstimator creates an Estimator using the default speed profiles.
func NewEstimator() *Estimator {
	return &Estimator{profiles: defaultProfiles}
}

func (e *Estimator) Route(_ context.Context, origin, destination geocore.Coordinate, mode Mode, _ time.Time) (TravelInfo, error) {
	if err := geocore.Validate(origin.Lat, origin.Lon); err != nil {
		return TravelInfo{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	if err := geocore.Validate(destination.Lat, destination.Lon); err != nil {
		return TravelInfo{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	profile, ok := e.profiles[mode]
	if !ok {
		profile = defaultProfiles[ModeDriving]
	}

	straightKm := geocore.Haversine(origin, destination)
	distanceKm := straightKm * profile.distanceMult
	hours := distanceKm / profile.speedKmh
	durationMin := hours * 60 * profile.timeMult

	return TravelInfo{
		DurationMin: int(math.Round(durationMin)),
		DistanceKm:  math.Round(distanceKm*10) / 10,
		Label:       fmt.Sprintf("estimated %s", mode),
		IsEstimated: true,
	}, nil
}
