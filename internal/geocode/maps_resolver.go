package geocode

import (
	"context"

	"itinerary/internal/geocore"
)

// addressGeocoder is satisfied by oracle.Provider without introducing an
// import cycle (oracle does not depend on geocode).
type addressGeocoder interface {
	GeocodeAddress(ctx context.Context, address string) (geocore.Coordinate, error)
}

// MapsResolver resolves place names via the Google Maps Geocoding API,
// reusing the same client the travel oracle uses for directions.
type MapsResolver struct {
	geocoder addressGeocoder
}

// NewMapsResolver wraps a Maps-backed geocoder (oracle.Provider).
func NewMapsResolver(geocoder addressGeocoder) *MapsResolver {
	return &MapsResolver{geocoder: geocoder}
}

func (m *MapsResolver) Resolve(ctx context.Context, name string) (geocore.Coordinate, error) {
	return m.geocoder.GeocodeAddress(ctx, name)
}
