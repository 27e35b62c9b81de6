// Package planner implements the main itinerary-assembly loop: a greedy
// next-POI selector driven by Strategy, followed by a return-leg adjustment
// that trims or pops tail visits to fit the trip's end time.
package planner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"itinerary/internal/catalog"
	"itinerary/internal/oracle"
	"itinerary/internal/strategy"
	"itinerary/internal/timecore"
	"itinerary/internal/validator"
)

// PlanFailed is returned when the return-leg adjustment loop pops every
// visit and still cannot fit the return within the trip's end time.
type PlanFailed struct {
	Reason string
}

func (e *PlanFailed) Error() string {
	return fmt.Sprintf("plan failed: %s", e.Reason)
}

// dwellFloorMin is the minimum dwell a visit may be trimmed down to before
// the return-leg adjustment gives up on shortening it and pops the visit.
const dwellFloorMin = 30

// dwellTrimStepMin is how much a visit's dwell is shortened per attempt.
const dwellTrimStepMin = 30

// PlanStep is one itinerary entry: an origin, a visited POI, or the return.
type PlanStep struct {
	Step             int                 `json:"step"`
	Name             string              `json:"name"`
	StartTime        string              `json:"start_time"`
	EndTime          string              `json:"end_time"`
	Duration         int                 `json:"duration"`
	TransportDetails string              `json:"transport_details"`
	TravelTime       int                 `json:"travel_time"`
	RouteInfo        *oracle.RouteDetail `json:"route_info,omitempty"`
}

// visit pairs an output step with the POI it represents, so the return-leg
// adjustment can pop a step and restore the traveler's prior location.
type visit struct {
	step PlanStep
	poi  catalog.PlaceRecord
}

// state is the Planner's transient working set, mutated in-loop. runID
// correlates this run's log lines; it never appears in the output steps.
type state struct {
	runID     string
	clock     timecore.Clock
	here      catalog.PlaceRecord
	origin    catalog.PlaceRecord
	tripStart timecore.Clock
	remaining []catalog.PlaceRecord
	hadLunch  bool
	hadDinner bool
	visits    []visit
}

// Planner runs the greedy selection loop and return-leg adjustment.
type Planner struct {
	Strategy *strategy.Strategy
	Oracle   oracle.TravelOracle
	Mode     oracle.Mode
}

// New builds a Planner over the given Strategy and TravelOracle.
func New(strat *strategy.Strategy, o oracle.TravelOracle, mode oracle.Mode) *Planner {
	return &Planner{Strategy: strat, Oracle: o, Mode: mode}
}

// Run builds one full itinerary: origin, greedily-selected visits, and a
// return leg to destination, honoring req's start/end time and distance
// ceiling. catalogPOIs is the full candidate pool (already validated);
// origin/destination are resolved coordinates with display names.
func (p *Planner) Run(ctx context.Context, origin, destination catalog.PlaceRecord, catalogPOIs []catalog.PlaceRecord, req validator.TripRequirement, weekday catalog.Weekday) ([]PlanStep, error) {
	s := &state{
		runID:     uuid.NewString(),
		clock:     req.StartTime,
		here:      origin,
		origin:    origin,
		tripStart: req.StartTime,
		remaining: append([]catalog.PlaceRecord(nil), catalogPOIs...),
	}

	if err := p.runLoop(ctx, s, req, weekday); err != nil {
		log.Printf("plan %s: failed during selection: %v", s.runID, err)
		return nil, err
	}

	if err := p.appendReturnLeg(ctx, s, destination, req); err != nil {
		log.Printf("plan %s: failed during return-leg adjustment: %v", s.runID, err)
		return nil, err
	}

	log.Printf("plan %s: %d visits", s.runID, len(s.visits))
	return s.output(), nil
}

func (s *state) output() []PlanStep {
	out := make([]PlanStep, 0, len(s.visits)+2)
	out = append(out, PlanStep{
		Step:      0,
		Name:      s.origin.Name,
		StartTime: s.tripStart.String(),
		EndTime:   s.tripStart.String(),
	})
	for i, v := range s.visits {
		step := v.step
		step.Step = i + 1
		out = append(out, step)
	}
	return out
}

func (p *Planner) runLoop(ctx context.Context, s *state, req validator.TripRequirement, weekday catalog.Weekday) error {
	for len(s.remaining) > 0 && s.clock < req.EndTime {
		poi, travel, ok, err := p.Strategy.Select(ctx, strategy.Request{
			Current:     s.here,
			Clock:       s.clock,
			Weekday:     weekday,
			Remaining:   s.remaining,
			TripEnd:     req.EndTime,
			DistanceCap: req.DistanceKm,
			HadLunch:    s.hadLunch,
			HadDinner:   s.hadDinner,
		})
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		arrive := timecore.AddMinutes(s.clock, travel.DurationMin)
		depart := timecore.AddMinutes(arrive, poi.DurationMin)
		if depart > req.EndTime {
			break
		}

		period := p.Strategy.Time.CurrentPeriod(s.clock)
		isMeal := p.Strategy.Time.IsMealTime(s.clock)
		if isMeal && poi.Label.MealCapable() {
			switch period {
			case catalog.PeriodLunch:
				s.hadLunch = true
			case catalog.PeriodDinner:
				s.hadDinner = true
			}
		}

		s.visits = append(s.visits, visit{
			poi: poi,
			step: PlanStep{
				Name:             poi.Name,
				StartTime:        arrive.String(),
				EndTime:          depart.String(),
				Duration:         poi.DurationMin,
				TransportDetails: string(p.Mode),
				TravelTime:       travel.DurationMin,
				RouteInfo:        travel.RouteDetail,
			},
		})

		s.here = poi
		s.clock = depart
		s.remaining = removePOI(s.remaining, poi)
	}
	return nil
}

// appendReturnLeg appends the return step if it fits; otherwise trims the
// last visit's dwell in dwellTrimStepMin decrements down to dwellFloorMin,
// and if still infeasible, pops the last visit entirely and retries from
// the prior step.
func (p *Planner) appendReturnLeg(ctx context.Context, s *state, destination catalog.PlaceRecord, req validator.TripRequirement) error {
	for {
		travel, err := p.Oracle.Route(ctx, s.here.Coordinate(), destination.Coordinate(), p.Mode, time.Time{})
		if err != nil {
			return err
		}

		returnClock := timecore.AddMinutes(s.clock, travel.DurationMin)
		if returnClock <= req.EndTime {
			s.visits = append(s.visits, visit{
				poi: destination,
				step: PlanStep{
					Name:             destination.Name,
					StartTime:        returnClock.String(),
					EndTime:          returnClock.String(),
					TransportDetails: string(p.Mode),
					TravelTime:       travel.DurationMin,
					RouteInfo:        travel.RouteDetail,
				},
			})
			return nil
		}

		if len(s.visits) == 0 {
			return &PlanFailed{Reason: "cannot fit return leg: no visits remain to trim or pop"}
		}

		last := &s.visits[len(s.visits)-1]
		if last.step.Duration-dwellTrimStepMin >= dwellFloorMin {
			last.step.Duration -= dwellTrimStepMin
			arrive := timecore.MustParse(last.step.StartTime)
			depart := timecore.AddMinutes(arrive, last.step.Duration)
			last.step.EndTime = depart.String()
			s.clock = depart
			continue
		}

		popped := s.visits[len(s.visits)-1]
		s.visits = s.visits[:len(s.visits)-1]
		s.remaining = append(s.remaining, popped.poi)

		if len(s.visits) == 0 {
			s.here = s.origin
			s.clock = req.StartTime
		} else {
			prior := s.visits[len(s.visits)-1]
			s.here = prior.poi
			s.clock = timecore.MustParse(prior.step.EndTime)
		}
	}
}

func removePOI(pois []catalog.PlaceRecord, target catalog.PlaceRecord) []catalog.PlaceRecord {
	out := make([]catalog.PlaceRecord, 0, len(pois))
	for _, p := range pois {
		if p.Name != target.Name {
			out = append(out, p)
		}
	}
	return out
}
