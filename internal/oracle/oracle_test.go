package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"itinerary/internal/geocore"
)

func TestEstimator_DrivingDefaults(t *testing.T) {
	e := NewEstimator()
	origin := geocore.Coordinate{Lat: 25.047, Lon: 121.517}
	dest := geocore.Coordinate{Lat: 25.034, Lon: 121.564}

	info, err := e.Route(context.Background(), origin, dest, ModeDriving, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.IsEstimated {
		t.Error("expected IsEstimated = true for the fallback estimator")
	}
	if info.DurationMin <= 0 {
		t.Errorf("expected positive duration, got %d", info.DurationMin)
	}
	straight := geocore.Haversine(origin, dest)
	if info.DistanceKm <= straight {
		t.Errorf("expected detour-adjusted distance > straight-line, got %v vs %v", info.DistanceKm, straight)
	}
}

func TestEstimator_BadCoordinate(t *testing.T) {
	e := NewEstimator()
	_, err := e.Route(context.Background(), geocore.Coordinate{Lat: 999}, geocore.Coordinate{}, ModeDriving, time.Time{})
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
}

type stubOracle struct {
	info TravelInfo
	err  error
	hits int
}

func (s *stubOracle) Route(context.Context, geocore.Coordinate, geocore.Coordinate, Mode, time.Time) (TravelInfo, error) {
	s.hits++
	return s.info, s.err
}

func TestFallbackOracle_DegradesOnError(t *testing.T) {
	primary := &stubOracle{err: errors.New("provider down")}
	f := NewFallbackOracle(primary)

	info, err := f.Route(context.Background(), geocore.Coordinate{Lat: 25, Lon: 121}, geocore.Coordinate{Lat: 25.1, Lon: 121.1}, ModeDriving, time.Time{})
	if err != nil {
		t.Fatalf("fallback should never surface a provider error: %v", err)
	}
	if !info.IsEstimated {
		t.Error("expected degraded result to be marked IsEstimated")
	}
}

func TestFallbackOracle_UsesPrimaryOnSuccess(t *testing.T) {
	primary := &stubOracle{info: TravelInfo{DurationMin: 42, DistanceKm: 10, IsEstimated: false}}
	f := NewFallbackOracle(primary)

	info, err := f.Route(context.Background(), geocore.Coordinate{Lat: 25, Lon: 121}, geocore.Coordinate{Lat: 25.1, Lon: 121.1}, ModeDriving, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.DurationMin != 42 || info.IsEstimated {
		t.Errorf("expected primary's result untouched, got %+v", info)
	}
}

func TestCachedOracle_MemoizesCalls(t *testing.T) {
	inner := &stubOracle{info: TravelInfo{DurationMin: 10}}
	c := NewCachedOracle(inner, 8)

	origin := geocore.Coordinate{Lat: 25, Lon: 121}
	dest := geocore.Coordinate{Lat: 25.1, Lon: 121.1}

	for i := 0; i < 3; i++ {
		if _, err := c.Route(context.Background(), origin, dest, ModeDriving, time.Time{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.hits != 1 {
		t.Errorf("expected inner oracle to be called once, got %d", inner.hits)
	}
}

func TestCachedOracle_DoesNotCacheErrors(t *testing.T) {
	inner := &stubOracle{err: errors.New("boom")}
	c := NewCachedOracle(inner, 8)

	origin := geocore.Coordinate{Lat: 25, Lon: 121}
	dest := geocore.Coordinate{Lat: 25.1, Lon: 121.1}

	for i := 0; i < 2; i++ {
		if _, err := c.Route(context.Background(), origin, dest, ModeDriving, time.Time{}); err == nil {
			t.Fatal("expected error to propagate")
		}
	}
	if inner.hits != 2 {
		t.Errorf("expected every call to reach inner after a failure, got %d hits", inner.hits)
	}
}
