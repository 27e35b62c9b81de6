// README: Entry point; loads config, wires the catalog and HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"itinerary/internal/catalog"
	"itinerary/internal/config"
	"itinerary/internal/geocode"
	"itinerary/internal/geocore"
	"itinerary/internal/httpapi"
	"itinerary/internal/httpapi/handlers"
	"itinerary/internal/infra"
	"itinerary/internal/oracle"
	"itinerary/internal/quota"
)

var errNoResolverConfigured = errors.New("itinerary-api: no geocoding backend configured")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
	} else {
		log.Print("ITINERARY_DB_DSN not set, running catalog-empty / quota-unmetered")
	}

	pois, err := loadCatalog(ctx, dbPool)
	if err != nil {
		log.Fatalf("catalog load: %v", err)
	}
	log.Printf("catalog loaded: %d POIs", len(pois))

	var primary oracle.TravelOracle
	if cfg.Maps.APIKey != "" {
		provider, err := oracle.NewProvider(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps provider init: %v", err)
		}
		primary = provider
	} else {
		log.Print("GOOGLE_MAPS_API_KEY not set, running fallback-estimator-only")
	}

	if len(pois) == 0 && dbPool != nil && cfg.Maps.APIKey != "" {
		pois, err = bootstrapCatalog(ctx, dbPool, cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("catalog bootstrap: %v", err)
		}
		log.Printf("catalog bootstrapped via Places discovery: %d POIs", len(pois))
	}

	resolver, err := newResolver(ctx, cfg, primary)
	if err != nil {
		log.Fatalf("resolver init: %v", err)
	}

	var verifier infra.TokenVerifier
	if cfg.Auth.FirebaseProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Auth.FirebaseProjectID, cfg.Auth.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
	} else {
		log.Print("FIREBASE_PROJECT_ID not set, running without bearer-token auth")
	}

	var quotaSvc *quota.Service
	if dbPool != nil && cfg.AI.GeminiKey != "" {
		quotaStore := quota.NewStore(dbPool)
		if err := quotaStore.Migrate(ctx); err != nil {
			log.Fatalf("quota migrate: %v", err)
		}
		quotaSvc = quota.NewService(quotaStore, resolver)
	}

	var geoIndex *catalog.GeoIndex
	if cfg.Redis.Addr != "" {
		geoIndex = catalog.NewGeoIndex(infra.NewRedis(cfg.Redis.Addr))
		for _, p := range pois {
			if err := geoIndex.Index(ctx, p); err != nil {
				log.Fatalf("geo index: %v", err)
			}
		}
	} else {
		log.Print("ITINERARY_REDIS_ADDR not set, running without the GEO pre-filter")
	}

	planHandler := handlers.NewPlanHandler(handlers.NewStaticCatalog(pois), resolver, primary, cfg.Planner, quotaSvc, geoIndex)
	router := httpapi.NewRouter(planHandler, verifier)

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}
	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// loadCatalog loads the full POI catalog from Postgres. A nil pool (no DSN
// configured) yields an empty catalog, which still lets the planner run and
// immediately return an origin-and-return-only itinerary.
func loadCatalog(ctx context.Context, pool *pgxpool.Pool) ([]catalog.PlaceRecord, error) {
	if pool == nil {
		return nil, nil
	}
	store := catalog.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store.All(ctx)
}

// discoveryCategories are the Places Text Search categories used to seed an
// empty catalog; these mirror catalog.DiscoverNear's supported labels.
var discoveryCategories = []string{"tourist attraction", "restaurant", "night market", "shopping mall"}

// bootstrapCatalog seeds an empty catalog by running Places discovery around
// the hard-coded default start point, then persists and returns the result.
// Only invoked when the catalog loaded empty and a Maps key is configured;
// a non-empty catalog is never overwritten.
func bootstrapCatalog(ctx context.Context, pool *pgxpool.Pool, mapsKey string) ([]catalog.PlaceRecord, error) {
	discoverer, err := catalog.NewDiscoverer(mapsKey)
	if err != nil {
		return nil, err
	}

	center := geocode.DefaultStartCoordinate
	store := catalog.NewStore(pool)

	var out []catalog.PlaceRecord
	for _, category := range discoveryCategories {
		found, err := discoverer.DiscoverNear(ctx, center.Lat, center.Lon, category)
		if err != nil {
			return nil, fmt.Errorf("discover %q: %w", category, err)
		}
		for _, p := range found {
			if err := store.Upsert(ctx, p); err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

// newResolver prefers Gemini when configured, then the Maps provider, and
// finally the hard-coded Taipei Main Station default with no lookup backend
// at all (every caller that only ever sends the default start_point still
// works).
func newResolver(ctx context.Context, cfg config.Config, primary oracle.TravelOracle) (geocode.Resolver, error) {
	if cfg.AI.GeminiKey != "" {
		return geocode.NewGeminiResolver(ctx, cfg.AI.GeminiKey)
	}
	if provider, ok := primary.(*oracle.Provider); ok {
		return geocode.NewMapsResolver(provider), nil
	}
	return noopResolver{}, nil
}

// noopResolver rejects any lookup beyond the hard-coded default, matching
// ResolveWithDefault's short-circuit for "Taipei Main Station".
type noopResolver struct{}

func (noopResolver) Resolve(ctx context.Context, name string) (geocore.Coordinate, error) {
	return geocore.Coordinate{}, errNoResolverConfigured
}
