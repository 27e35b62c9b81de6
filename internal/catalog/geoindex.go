package catalog

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const geoIndexKey = "catalog:pois"

// GeoIndex is a Redis GEO-backed spatial pre-filter over the catalog: given
// a center and radius it narrows the candidate pool before the planner
// loop runs Strategy/Scorer over the (much smaller) result, adapted from
// the matching module's driver-proximity GeoSearch.
type GeoIndex struct {
	redis *redis.Client
}

// NewGeoIndex wraps a Redis client for catalog spatial indexing.
func NewGeoIndex(client *redis.Client) *GeoIndex {
	return &GeoIndex{redis: client}
}

// Index adds or updates a POI's position in the GEO set.
func (g *GeoIndex) Index(ctx context.Context, p PlaceRecord) error {
	return g.redis.GeoAdd(ctx, geoIndexKey, &redis.GeoLocation{
		Name:      p.Name,
		Longitude: p.Lon,
		Latitude:  p.Lat,
	}).Err()
}

// Remove deletes a POI from the GEO set by name.
func (g *GeoIndex) Remove(ctx context.Context, name string) error {
	return g.redis.ZRem(ctx, geoIndexKey, name).Err()
}

// NearbyNames returns the names of every POI within radiusKm of center,
// closest first. Callers join these back against the authoritative catalog
// (GeoIndex stores no place data beyond name and position).
func (g *GeoIndex) NearbyNames(ctx context.Context, lat, lon, radiusKm float64) ([]string, error) {
	results, err := g.redis.GeoSearch(ctx, geoIndexKey, &redis.GeoSearchQuery{
		Longitude:  lon,
		Latitude:   lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Filter narrows pois down to those within radiusKm of (lat, lon), using the
// GEO index, then re-attaching the full PlaceRecord for each hit.
func (g *GeoIndex) Filter(ctx context.Context, pois []PlaceRecord, lat, lon, radiusKm float64) ([]PlaceRecord, error) {
	names, err := g.NearbyNames(ctx, lat, lon, radiusKm)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	out := make([]PlaceRecord, 0, len(names))
	for _, p := range pois {
		if keep[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}
