// Package geocode resolves free-text place names (trip start/end points,
// catalog entries missing coordinates) into geocore.Coordinate values.
// Concrete resolution is delegated to whichever backend is configured.
package geocode

import (
	"context"

	"itinerary/internal/geocore"
)

// Resolver turns a free-text address or place name into a coordinate.
type Resolver interface {
	Resolve(ctx context.Context, name string) (geocore.Coordinate, error)
}

// DefaultStartCoordinate is the hard-coded fallback coordinate for
// "Taipei Main Station" when start_point is the literal default.
var DefaultStartCoordinate = geocore.Coordinate{Lat: 25.0478, Lon: 121.5170}

// DefaultStartName is the hard-coded fallback start/end point name; looking
// it up never costs a network round trip or a metered lookup.
const DefaultStartName = "Taipei Main Station"

// IsDefaultStart reports whether name is the hard-coded default start/end
// point, resolvable without consulting r.
func IsDefaultStart(name string) bool {
	return name == DefaultStartName
}

// ResolveWithDefault resolves name, short-circuiting the hard-coded Taipei
// Main Station coordinate without a network round trip.
func ResolveWithDefault(ctx context.Context, r Resolver, name string) (geocore.Coordinate, error) {
	if IsDefaultStart(name) {
		return DefaultStartCoordinate, nil
	}
	return r.Resolve(ctx, name)
}
