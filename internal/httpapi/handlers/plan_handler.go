// README: /api/plan handler — validates the request, resolves start/end
// points, and runs one planner pass per call with its own oracle cache.
package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"itinerary/internal/catalog"
	"itinerary/internal/config"
	"itinerary/internal/geocode"
	"itinerary/internal/geocore"
	"itinerary/internal/oracle"
	"itinerary/internal/planner"
	"itinerary/internal/quota"
	"itinerary/internal/scorer"
	"itinerary/internal/strategy"
	"itinerary/internal/timeservice"
	"itinerary/internal/validator"
)

// CatalogSource supplies the candidate POI pool for a plan request. The
// handler never mutates what it returns.
type CatalogSource interface {
	All() []catalog.PlaceRecord
}

// staticCatalog adapts a plain slice (e.g. CSV-loaded at startup) to
// CatalogSource.
type staticCatalog []catalog.PlaceRecord

func (c staticCatalog) All() []catalog.PlaceRecord { return c }

// NewStaticCatalog wraps a fixed POI slice as a CatalogSource.
func NewStaticCatalog(pois []catalog.PlaceRecord) CatalogSource {
	return staticCatalog(pois)
}

// planRequestBody is the wire shape of a POST /api/plan body, mirroring
// validator.TripRequirementInput with JSON tags.
type planRequestBody struct {
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	StartPoint    string  `json:"start_point"`
	EndPoint      string  `json:"end_point"`
	TransportMode string  `json:"transport_mode"`
	DistanceKm    float64 `json:"distance_km"`
	LunchTime     string  `json:"lunch_time"`
	DinnerTime    string  `json:"dinner_time"`
	BreakfastTime string  `json:"breakfast_time"`
	Date          string  `json:"date"`
	Budget        *int    `json:"budget"`
}

// PlanHandler wires the full C1-C10 pipeline behind one HTTP endpoint.
type PlanHandler struct {
	Catalog  CatalogSource
	Resolver geocode.Resolver
	Primary  oracle.TravelOracle // optional; nil means fallback-estimator-only
	Cfg      config.PlannerConfig
	// Quota gates non-default geocoding lookups behind a per-user monthly
	// allowance when auth is enabled. Nil means unmetered resolution.
	Quota *quota.Service
	// GeoIndex narrows the catalog to POIs within the trip's distance
	// ceiling before validation/scoring runs. Nil means no Redis GEO
	// pre-filter; the full catalog is passed through unfiltered.
	GeoIndex *catalog.GeoIndex
}

// NewPlanHandler builds a PlanHandler. primary, quotaSvc, and geoIndex may
// be nil.
func NewPlanHandler(catalogSource CatalogSource, resolver geocode.Resolver, primary oracle.TravelOracle, cfg config.PlannerConfig, quotaSvc *quota.Service, geoIndex *catalog.GeoIndex) *PlanHandler {
	return &PlanHandler{Catalog: catalogSource, Resolver: resolver, Primary: primary, Cfg: cfg, Quota: quotaSvc, GeoIndex: geoIndex}
}

// resolve looks up name, metering the call against the caller's quota when
// both a quota service and an authenticated uid are available.
func (h *PlanHandler) resolve(c *gin.Context, name string) (geocore.Coordinate, error) {
	ctx := c.Request.Context()
	if h.Quota == nil || geocode.IsDefaultStart(name) {
		return geocode.ResolveWithDefault(ctx, h.Resolver, name)
	}
	uid, ok := c.Get("uid")
	if !ok {
		return geocode.ResolveWithDefault(ctx, h.Resolver, name)
	}
	return h.Quota.Resolve(ctx, uid.(string), name)
}

// Plan handles POST /api/plan.
func (h *PlanHandler) Plan(c *gin.Context) {
	var body planRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	req, err := validator.ValidateTripRequirement(validator.TripRequirementInput{
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		StartPoint:    body.StartPoint,
		EndPoint:      body.EndPoint,
		TransportMode: body.TransportMode,
		DistanceKm:    body.DistanceKm,
		LunchTime:     body.LunchTime,
		DinnerTime:    body.DinnerTime,
		BreakfastTime: body.BreakfastTime,
		Date:          body.Date,
		Budget:        body.Budget,
	})
	if err != nil {
		writePlanError(c, err)
		return
	}

	ctx := c.Request.Context()

	originCoord, err := h.resolve(c, req.StartPoint)
	if err != nil {
		writeError(c, http.StatusBadRequest, "could not resolve start_point: "+err.Error())
		return
	}
	destCoord, err := h.resolve(c, req.EndPoint)
	if err != nil {
		writeError(c, http.StatusBadRequest, "could not resolve end_point: "+err.Error())
		return
	}

	origin := catalog.PlaceRecord{Name: req.StartPoint, Lat: originCoord.Lat, Lon: originCoord.Lon}
	destination := catalog.PlaceRecord{Name: req.EndPoint, Lat: destCoord.Lat, Lon: destCoord.Lon}

	pois := h.Catalog.All()
	if h.GeoIndex != nil {
		narrowed, err := h.GeoIndex.Filter(ctx, pois, originCoord.Lat, originCoord.Lon, req.DistanceKm)
		if err != nil {
			writeError(c, http.StatusInternalServerError, "geo pre-filter: "+err.Error())
			return
		}
		pois = narrowed
	}
	for _, p := range pois {
		if err := validator.ValidatePlaceRecord(p); err != nil {
			writeError(c, http.StatusInternalServerError, "catalog: "+err.Error())
			return
		}
	}

	// Each request owns its own cache and oracle instance: concurrent
	// requests must not share memoized travel times across different depart
	// clocks or trip weekdays.
	fallback := oracle.NewFallbackOracle(h.Primary)
	if h.Cfg.OracleTimeoutMs > 0 {
		fallback.Timeout = time.Duration(h.Cfg.OracleTimeoutMs) * time.Millisecond
	}
	travelOracle := oracle.NewCachedOracle(fallback, h.Cfg.OracleCacheSize)
	ts := timeservice.New(req.LunchTime, req.DinnerTime).WithMealWindow(h.Cfg.MealWindowMin)

	stratCfg := strategy.Config{Weights: scorer.DefaultWeights, TopK: h.Cfg.TopK}
	if stratCfg.TopK > 1 {
		stratCfg.Rand = rand.New(rand.NewSource(planSeed(req)))
	}

	strat := strategy.New(travelOracle, ts, req.TransportMode, stratCfg)
	plan := planner.New(strat, travelOracle, req.TransportMode)

	steps, err := plan.Run(ctx, origin, destination, pois, req, catalog.WeekdayFromDate(req.Date))
	if err != nil {
		writePlanError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{"itinerary": steps})
}

// planSeed derives a deterministic top-k randomization seed from the
// request itself so that identical requests produce identical plans.
func planSeed(req validator.TripRequirement) int64 {
	h := int64(req.StartTime) + int64(req.EndTime)*31 + int64(len(req.StartPoint))*7 + int64(len(req.EndPoint))*13
	return h
}
