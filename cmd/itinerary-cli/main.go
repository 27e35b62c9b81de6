// README: One-shot CLI: catalog path + optional requirement JSON -> itinerary
// printed to stdout. Exit 0 on success, non-zero on BadInput or PlanFailed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"itinerary/internal/catalog"
	"itinerary/internal/geocode"
	"itinerary/internal/geocore"
	"itinerary/internal/oracle"
	"itinerary/internal/planner"
	"itinerary/internal/scorer"
	"itinerary/internal/strategy"
	"itinerary/internal/timeservice"
	"itinerary/internal/validator"
)

func main() {
	catalogPath := flag.String("catalog", "", "path to the POI catalog CSV")
	requirementPath := flag.String("requirement", "", "path to a TripRequirement JSON file (optional)")
	topK := flag.Int("top-k", 1, "randomization pool size (1 = deterministic)")
	flag.Parse()

	if *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "itinerary-cli: -catalog is required")
		os.Exit(2)
	}

	code := run(*catalogPath, *requirementPath, *topK)
	os.Exit(code)
}

func run(catalogPath, requirementPath string, topK int) int {
	f, err := os.Open(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "itinerary-cli: %v\n", err)
		return 1
	}
	defer f.Close()

	pois, err := catalog.LoadCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "itinerary-cli: %v\n", err)
		return 1
	}

	in, err := loadRequirement(requirementPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "itinerary-cli: %v\n", err)
		return 1
	}

	req, err := validator.ValidateTripRequirement(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "itinerary-cli: %v\n", err)
		return 1
	}

	ctx := context.Background()
	originCoord, err := geocode.ResolveWithDefault(ctx, noopResolver{}, req.StartPoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "itinerary-cli: resolve start_point: %v\n", err)
		return 1
	}
	destCoord, err := geocode.ResolveWithDefault(ctx, noopResolver{}, req.EndPoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "itinerary-cli: resolve end_point: %v\n", err)
		return 1
	}
	origin := catalog.PlaceRecord{Name: req.StartPoint, Lat: originCoord.Lat, Lon: originCoord.Lon}
	destination := catalog.PlaceRecord{Name: req.EndPoint, Lat: destCoord.Lat, Lon: destCoord.Lon}

	travelOracle := oracle.NewCachedOracle(oracle.NewFallbackOracle(nil), 192)
	ts := timeservice.New(req.LunchTime, req.DinnerTime)

	cfg := strategy.Config{Weights: scorer.DefaultWeights, TopK: topK}
	if topK > 1 {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	strat := strategy.New(travelOracle, ts, req.TransportMode, cfg)
	plan := planner.New(strat, travelOracle, req.TransportMode)

	steps, err := plan.Run(ctx, origin, destination, pois, req, catalog.WeekdayFromDate(req.Date))
	if err != nil {
		fmt.Fprintf(os.Stderr, "itinerary-cli: %v\n", err)
		return 1
	}

	printTable(steps)
	return 0
}

func loadRequirement(path string) (validator.TripRequirementInput, error) {
	if path == "" {
		return validator.TripRequirementInput{
			StartTime: "09:00",
			EndTime:   "18:00",
		}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return validator.TripRequirementInput{}, err
	}
	defer f.Close()
	var in validator.TripRequirementInput
	if err := json.NewDecoder(f).Decode(&in); err != nil {
		return validator.TripRequirementInput{}, fmt.Errorf("parse requirement: %w", err)
	}
	return in, nil
}

func printTable(steps []planner.PlanStep) {
	fmt.Printf("%-3s %-24s %-8s %-8s %-8s %-10s\n", "#", "name", "arrive", "depart", "dwell", "travel_min")
	for _, s := range steps {
		fmt.Printf("%-3d %-24s %-8s %-8s %-8d %-10d\n", s.Step, s.Name, s.StartTime, s.EndTime, s.Duration, s.TravelTime)
	}
}

// noopResolver serves CLI runs with no geocoding backend configured: only
// the hard-coded Taipei Main Station default resolves; any other start or
// end point name fails to resolve and the run exits non-zero.
type noopResolver struct{}

func (noopResolver) Resolve(ctx context.Context, name string) (geocore.Coordinate, error) {
	return geocore.Coordinate{}, fmt.Errorf("itinerary-cli: no geocoding backend configured, cannot resolve %q", name)
}
