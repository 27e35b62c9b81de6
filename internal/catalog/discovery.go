package catalog

import (
	"context"
	"fmt"

	gmaps "googlemaps.github.io/maps"

	"itinerary/internal/timecore"
)

// categoryLabels maps a Places API text-search category to the catalog
// Label and Period a discovered POI is seeded with. A human curator is
// expected to refine these before the record is trusted in a real run;
// Discover exists to widen a sparse catalog, not to replace curation.
var categoryLabels = map[string]struct {
	label  Label
	period Period
}{
	"tourist attraction": {LabelAttraction, PeriodMorning},
	"restaurant":         {LabelRestaurant, PeriodLunch},
	"night market":       {LabelNightMarket, PeriodNight},
	"shopping mall":      {LabelShopping, PeriodAfternoon},
}

// defaultDurationMin is the dwell time assigned to a discovered POI until a
// curator supplies a better estimate.
const defaultDurationMin = 60

// Discoverer augments a sparse catalog via Places Text Search, adapted from
// the ride-hailing module's waypoint-based shop search.
type Discoverer struct {
	client *gmaps.Client
}

// NewDiscoverer wraps a Google Places API client.
func NewDiscoverer(apiKey string) (*Discoverer, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("catalog: create places client: %w", err)
	}
	return &Discoverer{client: client}, nil
}

// DiscoverNear runs a text search for category near (lat, lon) and returns
// draft PlaceRecords: coordinates and rating come from the API; hours are
// left open-all-day (the API's opening_hours is not modeled here) until a
// curator backfills the real schedule.
func (d *Discoverer) DiscoverNear(ctx context.Context, lat, lon float64, category string) ([]PlaceRecord, error) {
	meta, ok := categoryLabels[category]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown discovery category %q", category)
	}

	resp, err := d.client.TextSearch(ctx, &gmaps.TextSearchRequest{
		Query:    fmt.Sprintf("%s near %f,%f", category, lat, lon),
		Language: "zh-TW",
		Region:   "TW",
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: places text search: %w", err)
	}

	allDay := []Slot{{Start: 0, End: timecore.MustParse("23:59")}}
	hours := Hours{
		Monday:    allDay,
		Tuesday:   allDay,
		Wednesday: allDay,
		Thursday:  allDay,
		Friday:    allDay,
		Saturday:  allDay,
		Sunday:    allDay,
	}

	out := make([]PlaceRecord, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Rating < 3.0 {
			continue
		}
		out = append(out, PlaceRecord{
			Name:        r.Name,
			Lat:         r.Geometry.Location.Lat,
			Lon:         r.Geometry.Location.Lng,
			Rating:      float64(r.Rating),
			DurationMin: defaultDurationMin,
			Label:       meta.label,
			Period:      meta.period,
			Hours:       hours,
		})
	}
	return out, nil
}

// DiscoverAlongRoute runs DiscoverNear at each waypoint and deduplicates
// results by name, adapted from SearchAlongRoute's multi-waypoint merge.
func (d *Discoverer) DiscoverAlongRoute(ctx context.Context, waypoints [][2]float64, category string) ([]PlaceRecord, error) {
	seen := make(map[string]bool)
	var out []PlaceRecord
	for _, wp := range waypoints {
		results, err := d.DiscoverNear(ctx, wp[0], wp[1], category)
		if err != nil {
			continue
		}
		for _, p := range results {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			out = append(out, p)
		}
	}
	return out, nil
}
