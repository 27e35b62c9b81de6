package oracle

import (
	"context"
	"fmt"
	"time"

	gmaps "googlemaps.github.io/maps"

	"itinerary/internal/geocore"
)

// Provider is the directions-API-backed TravelOracle implementation: it asks
// Google Maps Directions for a route and reports the leg's duration/distance.
// It never degrades to an estimate itself — that is FallbackOracle's job —
// so any API failure is returned as-is.
type Provider struct {
	client *gmaps.Client
}

// NewProvider creates a Provider using the given Google Maps API key.
func NewProvider(apiKey string) (*Provider, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("oracle: create maps client: %w", err)
	}
	return &Provider{client: client}, nil
}

var modeToMaps = map[Mode]gmaps.Mode{
	ModeDriving:   gmaps.TravelModeDriving,
	ModeTransit:   gmaps.TravelModeTransit,
	ModeWalking:   gmaps.TravelModeWalking,
	ModeBicycling: gmaps.TravelModeBicycling,
}

func (p *Provider) Route(ctx context.Context, origin, destination geocore.Coordinate, mode Mode, dependAt time.Time) (TravelInfo, error) {
	travelMode, ok := modeToMaps[mode]
	if !ok {
		travelMode = gmaps.TravelModeDriving
	}

	// depart_at must be >= now; substitute now if the caller handed us a
	// time in the past (e.g. the planner clock has already moved on).
	now := time.Now()
	if dependAt.IsZero() || dependAt.Before(now) {
		dependAt = now
	}

	req := &gmaps.DirectionsRequest{
		Origin:        fmt.Sprintf("%f,%f", origin.Lat, origin.Lon),
		Destination:   fmt.Sprintf("%f,%f", destination.Lat, destination.Lon),
		Mode:          travelMode,
		DepartureTime: fmt.Sprintf("%d", dependAt.Unix()),
		Language:      "zh-TW",
		Region:        "TW",
	}

	routes, _, err := p.client.Directions(ctx, req)
	if err != nil {
		return TravelInfo{}, fmt.Errorf("oracle: directions request: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return TravelInfo{}, fmt.Errorf("oracle: no route found")
	}

	leg := routes[0].Legs[0]
	return TravelInfo{
		DurationMin: int(leg.Duration.Round(time.Minute).Minutes()),
		DistanceKm:  float64(leg.Distance.Meters) / 1000.0,
		Label:       leg.Distance.HumanReadable,
		RouteDetail: &RouteDetail{Summary: routes[0].Summary},
		IsEstimated: false,
	}, nil
}

// GeocodeAddress converts a free-text address into a coordinate. This is the
// Maps-backed implementation of the geocode.Resolver interface.
func (p *Provider) GeocodeAddress(ctx context.Context, address string) (geocore.Coordinate, error) {
	req := &gmaps.GeocodingRequest{
		Address:  address,
		Language: "zh-TW",
		Region:   "TW",
	}
	results, err := p.client.Geocode(ctx, req)
	if err != nil {
		return geocore.Coordinate{}, fmt.Errorf("oracle: geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return geocore.Coordinate{}, fmt.Errorf("oracle: address not found: %s", address)
	}
	loc := results[0].Geometry.Location
	return geocore.Coordinate{Lat: loc.Lat, Lon: loc.Lng}, nil
}
