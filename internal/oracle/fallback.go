package oracle

import (
	"context"
	"time"

	"itinerary/internal/geocore"
)

// DefaultProviderTimeout bounds a single provider call: on timeout the
// oracle degrades to the deterministic fallback estimate.
const DefaultProviderTimeout = 5 * time.Second

// FallbackOracle tries a provider-backed oracle first and silently degrades
// to the deterministic estimator on any error or timeout, marking the
// result IsEstimated. It can only return ErrOracleUnavailable if the
// fallback itself errors, which only happens for invalid coordinates.
type FallbackOracle struct {
	Primary  TravelOracle
	Fallback TravelOracle
	Timeout  time.Duration
}

// NewFallbackOracle wires a primary (provider) oracle with the deterministic
// estimator as its fallback. primary may be nil, in which case the
// estimator is used directly (no directions-API credential configured).
func NewFallbackOracle(primary TravelOracle) *FallbackOracle {
	return &FallbackOracle{
		Primary:  primary,
		Fallback: NewEstimator(),
		Timeout:  DefaultProviderTimeout,
	}
}

func (f *FallbackOracle) Route(ctx context.Context, origin, destination geocore.Coordinate, mode Mode, dependAt time.Time) (TravelInfo, error) {
	if f.Primary == nil {
		return f.Fallback.Route(ctx, origin, destination, mode, dependAt)
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	info, err := f.Primary.Route(callCtx, origin, destination, mode, dependAt)
	if err == nil {
		return info, nil
	}

	// Provider failed or timed out: degrade to the deterministic estimate.
	fallbackInfo, fallbackErr := f.Fallback.Route(ctx, origin, destination, mode, dependAt)
	if fallbackErr != nil {
		return TravelInfo{}, fallbackErr
	}
	fallbackInfo.IsEstimated = true
	return fallbackInfo, nil
}
