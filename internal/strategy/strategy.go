// Package strategy implements the per-step candidate selection: period
// filtering (meal vs. non-meal), scoring every remaining candidate, and
// picking the winner (optionally at random from the top-k).
package strategy

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"itinerary/internal/catalog"
	"itinerary/internal/geocore"
	"itinerary/internal/oracle"
	"itinerary/internal/scorer"
	"itinerary/internal/timecore"
	"itinerary/internal/timeservice"
)

// Config holds the tunables for one planner run.
type Config struct {
	Weights scorer.Weights
	// TopK is the size of the randomization pool; 1 means always take the
	// best-scoring candidate (deterministic).
	TopK int
	// Rand supplies the randomization source when TopK > 1. A nil Rand with
	// TopK > 1 falls back to always picking the pool's first (best) entry.
	Rand *rand.Rand
}

// DefaultConfig is deterministic: top_k=1, canonical weights.
func DefaultConfig() Config {
	return Config{Weights: scorer.DefaultWeights, TopK: 1}
}

// Strategy selects the next POI to visit given the planner's current state.
type Strategy struct {
	Oracle  oracle.TravelOracle
	Time    *timeservice.Service
	Mode    oracle.Mode
	Cfg     Config
}

// New builds a Strategy over the given oracle, meal-time service, and
// transport mode, using cfg for scoring weights and top-k randomization.
func New(o oracle.TravelOracle, ts *timeservice.Service, mode oracle.Mode, cfg Config) *Strategy {
	if cfg.TopK <= 0 {
		cfg.TopK = 1
	}
	if cfg.Weights == (scorer.Weights{}) {
		cfg.Weights = scorer.DefaultWeights
	}
	return &Strategy{Oracle: o, Time: ts, Mode: mode, Cfg: cfg}
}

// Request bundles the per-step state Strategy needs to pick the next POI.
type Request struct {
	Current     catalog.PlaceRecord
	Clock       timecore.Clock
	Weekday     catalog.Weekday
	Remaining   []catalog.PlaceRecord
	TripEnd     timecore.Clock
	DistanceCap float64
	HadLunch    bool
	HadDinner   bool
}

// candidate bundles a feasible POI with its travel estimate and score, for
// sorting and tie-breaking.
type candidate struct {
	poi    catalog.PlaceRecord
	travel oracle.TravelInfo
	score  scorer.Breakdown
}

// Select scores every eligible remaining candidate and returns the winner.
// ok is false when no candidate is both period-eligible and feasible.
func (s *Strategy) Select(ctx context.Context, req Request) (catalog.PlaceRecord, oracle.TravelInfo, bool, error) {
	period := s.Time.CurrentPeriod(req.Clock)
	isMeal := s.Time.IsMealTime(req.Clock)

	eligible := s.filterByPeriod(req, period, isMeal)
	if len(eligible) == 0 {
		return catalog.PlaceRecord{}, oracle.TravelInfo{}, false, nil
	}

	// Reject candidates outside the distance ceiling's bounding box before
	// paying for an exact Haversine/oracle call on each one.
	bounds := geocore.ComputeBounds(req.Current.Coordinate(), req.DistanceCap)
	eligible = filter(eligible, func(p catalog.PlaceRecord) bool {
		return bounds.Contains(p.Coordinate())
	})
	if len(eligible) == 0 {
		return catalog.PlaceRecord{}, oracle.TravelInfo{}, false, nil
	}

	candidates := make([]candidate, 0, len(eligible))
	for _, poi := range eligible {
		// The fallback estimator cannot fail for coordinates the validator
		// has already accepted. Skip the candidate rather than abort selection.
		travel, err := s.Oracle.Route(ctx, req.Current.Coordinate(), poi.Coordinate(), s.Mode, time.Time{})
		if err != nil {
			continue
		}

		sb := scorer.Score(scorer.Input{
			Candidate:   poi,
			Current:     req.Current,
			Clock:       req.Clock,
			Travel:      travel,
			Weekday:     req.Weekday,
			TripEnd:     req.TripEnd,
			DistanceCap: req.DistanceCap,
			IsMealTime:  isMeal,
			Period:      period,
		}, s.Cfg.Weights)
		if !sb.Feasible {
			continue
		}

		candidates = append(candidates, candidate{poi: poi, travel: travel, score: sb})
	}

	if len(candidates) == 0 {
		return catalog.PlaceRecord{}, oracle.TravelInfo{}, false, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return less(candidates[i], candidates[j])
	})

	pool := candidates
	if s.Cfg.TopK < len(pool) {
		pool = pool[:s.Cfg.TopK]
	}

	chosen := pool[0]
	if len(pool) > 1 && s.Cfg.Rand != nil {
		chosen = pool[s.Cfg.Rand.Intn(len(pool))]
	}

	return chosen.poi, chosen.travel, true, nil
}

// filterByPeriod restricts candidates to meal-capable labels during a
// pending meal window (when the trip hasn't yet had that meal); otherwise
// candidates must match the current period or be open 24 hours.
func (s *Strategy) filterByPeriod(req Request, period catalog.Period, isMeal bool) []catalog.PlaceRecord {
	if isMeal && mealPending(period, req) {
		return filter(req.Remaining, func(p catalog.PlaceRecord) bool {
			return p.Label.MealCapable()
		})
	}
	return filter(req.Remaining, func(p catalog.PlaceRecord) bool {
		return p.Period == period || p.Is24Hour(req.Weekday)
	})
}

func mealPending(period catalog.Period, req Request) bool {
	switch period {
	case catalog.PeriodLunch:
		return !req.HadLunch
	case catalog.PeriodDinner:
		return !req.HadDinner
	default:
		return false
	}
}

func filter(pois []catalog.PlaceRecord, keep func(catalog.PlaceRecord) bool) []catalog.PlaceRecord {
	out := make([]catalog.PlaceRecord, 0, len(pois))
	for _, p := range pois {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// less implements the candidate tie-break chain: composite score desc,
// rating desc, travel_min asc, name asc.
func less(a, b candidate) bool {
	if a.score.Composite != b.score.Composite {
		return a.score.Composite > b.score.Composite
	}
	if a.poi.Rating != b.poi.Rating {
		return a.poi.Rating > b.poi.Rating
	}
	if a.travel.DurationMin != b.travel.DurationMin {
		return a.travel.DurationMin < b.travel.DurationMin
	}
	return a.poi.Name < b.poi.Name
}
