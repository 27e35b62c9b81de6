// Package scorer implements the composite 0..1 scoring function that ranks
// a candidate POI for the next planner step, combining rating,
// time-efficiency, period fit, distance fit, and closing-time urgency.
package scorer

import (
	"math"

	"itinerary/internal/catalog"
	"itinerary/internal/geocore"
	"itinerary/internal/oracle"
	"itinerary/internal/timecore"
)

// Weights are the composite scoring weights, exposed as a struct of
// tunables rather than hard-coded so the several drifted scorer variants in
// the source material collapse to one canonical weighting.
type Weights struct {
	Rating     float64
	Efficiency float64
	Period     float64
	Distance   float64
}

// DefaultWeights is the canonical weighting.
var DefaultWeights = Weights{Rating: 0.3, Efficiency: 0.3, Period: 0.2, Distance: 0.2}

const efficiencyBaseline = 1.5

// Input bundles everything the composite score needs for one candidate.
type Input struct {
	Candidate   catalog.PlaceRecord
	Current     catalog.PlaceRecord
	Clock       timecore.Clock // time the traveler is currently at Current
	Travel      oracle.TravelInfo
	Weekday     catalog.Weekday
	TripEnd     timecore.Clock
	DistanceCap float64 // distance_threshold_km
	IsMealTime  bool
	Period      catalog.Period // current_period from TimeService
}

// Breakdown exposes the component scores for tests and diagnostics.
type Breakdown struct {
	Rating     float64
	Efficiency float64
	Period     float64
	Distance   float64
	Hours      float64
	Composite  float64
	Feasible   bool
}

// Score computes the composite score for in. Infeasible candidates return
// Breakdown{Feasible: false} with Composite == math.Inf(-1).
func Score(in Input, w Weights) Breakdown {
	arrival := timecore.AddMinutes(in.Clock, in.Travel.DurationMin)
	depart := timecore.AddMinutes(arrival, in.Candidate.DurationMin)

	distanceKm := geocore.Haversine(in.Current.Coordinate(), in.Candidate.Coordinate())

	infeasible := Breakdown{Composite: math.Inf(-1), Feasible: false}

	if !in.Candidate.IsOpenAt(in.Weekday, arrival) {
		return infeasible
	}
	if depart > in.TripEnd {
		return infeasible
	}
	if distanceKm > in.DistanceCap {
		return infeasible
	}
	if !in.Candidate.Is24Hour(in.Weekday) {
		remaining, ok := in.Candidate.RemainingMinutes(in.Weekday, arrival)
		if !ok || remaining < in.Candidate.DurationMin {
			return infeasible
		}
	}

	rating := ratingScore(in.Candidate.Rating)
	efficiency := efficiencyScore(in.Candidate, in.Travel.DurationMin)
	period := periodScore(in.Candidate, in.IsMealTime, in.Period)
	distance := distanceScore(in.Candidate.Label, distanceKm, in.DistanceCap)
	hours := hoursScore(in.Candidate, in.Weekday, arrival)

	composite := rating*w.Rating + efficiency*w.Efficiency + period*w.Period + distance*w.Distance
	composite *= hours
	composite = clamp01(composite)

	return Breakdown{
		Rating:     rating,
		Efficiency: efficiency,
		Period:     period,
		Distance:   distance,
		Hours:      hours,
		Composite:  composite,
		Feasible:   true,
	}
}

func ratingScore(rating float64) float64 {
	if rating <= 0 {
		return 0.5
	}
	score := rating / 5
	if score > 1 {
		score = 1
	}
	if rating >= 4.5 {
		score += 0.1 * (rating - 4.5)
	}
	return clamp01(score)
}

func efficiencyScore(candidate catalog.PlaceRecord, travelMin int) float64 {
	baseline := efficiencyBaseline
	switch {
	case candidate.Label == catalog.LabelAttraction:
		baseline *= 0.8
	case candidate.Label.MealCapable():
		baseline *= 1.2
	}

	denom := float64(travelMin)
	if denom < 1 {
		denom = 1
	}
	raw := float64(candidate.DurationMin) / denom / baseline
	return clamp01(raw)
}

func periodScore(candidate catalog.PlaceRecord, isMealTime bool, currentPeriod catalog.Period) float64 {
	if isMealTime {
		if candidate.Label.MealCapable() {
			return 1.0
		}
		return 0.3
	}

	if candidate.Period == currentPeriod {
		return 1.0
	}
	apart := catalog.PeriodsApart(candidate.Period, currentPeriod)
	if apart < 0 {
		return 0.3
	}
	score := 1 - 0.2*float64(apart)
	if score < 0.3 {
		score = 0.3
	}
	return score
}

func distanceScore(label catalog.Label, distanceKm, threshold float64) float64 {
	adjusted := threshold
	switch {
	case label == catalog.LabelAttraction:
		adjusted *= 1.2
	case label.MealCapable():
		adjusted *= 0.8
	}
	if adjusted <= 0 {
		return 0
	}
	score := 1 - distanceKm/adjusted
	if score < 0 {
		score = 0
	}
	return score
}

func hoursScore(candidate catalog.PlaceRecord, weekday catalog.Weekday, arrival timecore.Clock) float64 {
	if candidate.Is24Hour(weekday) {
		return 0.8
	}
	remaining, ok := candidate.RemainingMinutes(weekday, arrival)
	if !ok {
		return 0
	}
	dwell := float64(candidate.DurationMin)
	switch {
	case float64(remaining) >= 1.5*dwell:
		return 1.0
	case float64(remaining) >= dwell:
		return 0.5
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
