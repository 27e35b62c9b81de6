package planner

import (
	"context"
	"errors"
	"testing"

	"itinerary/internal/catalog"
	"itinerary/internal/oracle"
	"itinerary/internal/strategy"
	"itinerary/internal/timecore"
	"itinerary/internal/timeservice"
	"itinerary/internal/validator"
)

func originPOI() catalog.PlaceRecord {
	return catalog.PlaceRecord{Name: "Origin", Lat: 25.047, Lon: 121.517}
}

func openAllDay() catalog.Hours {
	return catalog.Hours{
		catalog.Monday: {{Start: timecore.MustParse("00:00"), End: timecore.MustParse("23:59")}},
	}
}

func newPlanner(mode oracle.Mode, cfg strategy.Config, lunch, dinner *timecore.Clock) *Planner {
	est := oracle.NewEstimator()
	strat := strategy.New(est, timeservice.New(lunch, dinner), mode, cfg)
	return New(strat, est, mode)
}

func req(start, end string, distanceKm float64) validator.TripRequirement {
	return validator.TripRequirement{
		StartTime:  timecore.MustParse(start),
		EndTime:    timecore.MustParse(end),
		DistanceKm: distanceKm,
	}
}

// Scenario A — trivial single POI.
func TestRun_ScenarioA_SingleAttraction(t *testing.T) {
	a := catalog.PlaceRecord{Name: "A", Lat: 25.034, Lon: 121.564, DurationMin: 60, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: openAllDay()}
	p := newPlanner(oracle.ModeDriving, strategy.DefaultConfig(), nil, nil)

	steps, err := p.Run(context.Background(), originPOI(), originPOI(), []catalog.PlaceRecord{a}, req("09:00", "18:00", 30), catalog.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps (origin, A, return), got %d: %+v", len(steps), steps)
	}
	if steps[1].Name != "A" {
		t.Errorf("expected step 1 to be A, got %s", steps[1].Name)
	}
	if steps[1].TravelTime < 1 || steps[1].TravelTime > 15 {
		t.Errorf("expected a small single-digit-ish travel time, got %d", steps[1].TravelTime)
	}
}

// Scenario C — opening-hours exclusion: only candidate is closed all day.
func TestRun_ScenarioC_ClosedPOIExcluded(t *testing.T) {
	closed := catalog.PlaceRecord{Name: "Closed", Lat: 25.034, Lon: 121.564, DurationMin: 60, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: catalog.Hours{}}
	p := newPlanner(oracle.ModeDriving, strategy.DefaultConfig(), nil, nil)

	steps, err := p.Run(context.Background(), originPOI(), originPOI(), []catalog.PlaceRecord{closed}, req("09:00", "18:00", 30), catalog.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected only origin + return when the only POI is closed, got %d: %+v", len(steps), steps)
	}
}

// Scenario D — overnight hours: open 17:00-02:00, visitable at 23:30.
func TestRun_ScenarioD_OvernightSlot(t *testing.T) {
	market := catalog.PlaceRecord{
		Name: "Night Market", Lat: 25.048, Lon: 121.520, DurationMin: 60,
		Label: catalog.LabelNightMarket, Period: catalog.PeriodNight,
		Hours: catalog.Hours{catalog.Monday: {{Start: timecore.MustParse("17:00"), End: timecore.MustParse("02:00")}}},
	}
	if !market.IsOpenAt(catalog.Monday, timecore.MustParse("23:30")) {
		t.Fatal("expected overnight market to be open at 23:30")
	}

	p := newPlanner(oracle.ModeDriving, strategy.DefaultConfig(), nil, nil)
	steps, err := p.Run(context.Background(), originPOI(), originPOI(), []catalog.PlaceRecord{market}, req("22:30", "23:59", 30), catalog.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, s := range steps {
		if s.Name == "Night Market" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the overnight market to be schedulable, got %+v", steps)
	}
}

// Scenario E — return-leg trimming: a long dwell that overshoots end_time
// must be trimmed in 30-min decrements (or popped) until the return fits.
// Far is 69 min away by the driving estimate: the visit (10:09-13:09) fits
// before 13:30, but the return (14:18) does not until the dwell is trimmed
// from 180 to 120 (depart 12:09, back 13:18).
func TestRun_ScenarioE_ReturnLegTrimsDwell(t *testing.T) {
	far := catalog.PlaceRecord{Name: "Far", Lat: 25.20, Lon: 121.70, DurationMin: 180, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: openAllDay()}
	p := newPlanner(oracle.ModeDriving, strategy.DefaultConfig(), nil, nil)

	steps, err := p.Run(context.Background(), originPOI(), originPOI(), []catalog.PlaceRecord{far}, req("09:00", "13:30", 50), catalog.Monday)
	if err != nil {
		var failed *PlanFailed
		if errors.As(err, &failed) {
			t.Fatalf("expected trimming or popping to resolve the overshoot, got PlanFailed: %v", failed)
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 3 || steps[1].Name != "Far" || steps[1].Duration != 120 {
		t.Errorf("expected Far kept with its dwell trimmed from 180 to 120, got %+v", steps)
	}
	last := steps[len(steps)-1]
	if timecore.MustParse(last.EndTime) > timecore.MustParse("13:30") {
		t.Errorf("expected final depart time to fit end_time, got %s", last.EndTime)
	}
}

// Scenario F — distance ceiling: the far POI is never selected.
func TestRun_ScenarioF_DistanceCeilingExcludesFarPOI(t *testing.T) {
	near := catalog.PlaceRecord{Name: "Near", Lat: 25.05, Lon: 121.52, Rating: 3.0, DurationMin: 60, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: openAllDay()}
	far := catalog.PlaceRecord{Name: "Far", Lat: 26.5, Lon: 123.0, Rating: 5.0, DurationMin: 60, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: openAllDay()}

	p := newPlanner(oracle.ModeDriving, strategy.DefaultConfig(), nil, nil)
	steps, err := p.Run(context.Background(), originPOI(), originPOI(), []catalog.PlaceRecord{near, far}, req("09:00", "18:00", 30), catalog.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range steps {
		if s.Name == "Far" {
			t.Fatalf("Far POI beyond the distance ceiling must never be selected, got %+v", steps)
		}
	}
}

// Universal invariant: consecutive steps' arrive == prior depart + travel_min.
func TestRun_Invariant_ConsecutiveStepsConsistent(t *testing.T) {
	a := catalog.PlaceRecord{Name: "A", Lat: 25.05, Lon: 121.52, DurationMin: 60, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: openAllDay()}
	b := catalog.PlaceRecord{Name: "B", Lat: 25.06, Lon: 121.53, DurationMin: 60, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: openAllDay()}

	p := newPlanner(oracle.ModeDriving, strategy.DefaultConfig(), nil, nil)
	steps, err := p.Run(context.Background(), originPOI(), originPOI(), []catalog.PlaceRecord{a, b}, req("09:00", "20:00", 30), catalog.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(steps); i++ {
		prevDepart := timecore.MustParse(steps[i-1].EndTime)
		arrive := timecore.MustParse(steps[i].StartTime)
		want := timecore.AddMinutes(prevDepart, steps[i].TravelTime)
		if arrive != want {
			t.Errorf("step %d: arrive %s != prior depart + travel_min (%s)", i, steps[i].StartTime, want)
		}
	}
}

// Idempotence: identical inputs and a deterministic (top_k=1, fallback-only)
// oracle must produce byte-identical output.
func TestRun_Idempotent(t *testing.T) {
	a := catalog.PlaceRecord{Name: "A", Lat: 25.05, Lon: 121.52, DurationMin: 60, Label: catalog.LabelAttraction, Period: catalog.PeriodMorning, Hours: openAllDay()}
	run := func() []PlanStep {
		p := newPlanner(oracle.ModeDriving, strategy.DefaultConfig(), nil, nil)
		steps, err := p.Run(context.Background(), originPOI(), originPOI(), []catalog.PlaceRecord{a}, req("09:00", "18:00", 30), catalog.Monday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return steps
	}
	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("expected identical step counts, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("step %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
