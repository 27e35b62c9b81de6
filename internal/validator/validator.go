// Package validator validates and default-fills trip requirements and
// catalog records before they reach the planner. Validation errors are
// returned as BadInput and never propagate past this layer.
package validator

import (
	"fmt"

	"itinerary/internal/catalog"
	"itinerary/internal/geocore"
	"itinerary/internal/oracle"
	"itinerary/internal/timecore"
)

// BadInput names the offending field and why it was rejected.
type BadInput struct {
	Field  string
	Reason string
}

func (e *BadInput) Error() string {
	return fmt.Sprintf("bad input at %s: %s", e.Field, e.Reason)
}

func badInput(field, reason string) *BadInput {
	return &BadInput{Field: field, Reason: reason}
}

// defaults fill in optional trip-requirement fields left unset by the caller.
const (
	DefaultLunchTime   = "12:00"
	DefaultDinnerTime  = "18:00"
	DefaultDistanceKm  = 30
	DefaultMode        = oracle.ModeDriving
	defaultStartName   = "Taipei Main Station"
	defaultStartLat    = 25.0478
	defaultStartLon    = 121.5170
)

// TripRequirementInput is the raw, unvalidated trip requirement as received
// from a caller (JSON body, CLI flags, etc.).
type TripRequirementInput struct {
	StartTime     string
	EndTime       string
	StartPoint    string
	EndPoint      string
	TransportMode string
	DistanceKm    float64 // <= 0 means "use default"
	LunchTime     string  // "" means use the default; "none" means no meal
	DinnerTime    string
	BreakfastTime string
	Date          string // MM-DD, optional
	Budget        *int
}

// TripRequirement is the validated, default-filled requirement the planner
// consumes.
type TripRequirement struct {
	StartTime     timecore.Clock
	EndTime       timecore.Clock
	StartPoint    string
	EndPoint      string
	TransportMode oracle.Mode
	DistanceKm    float64
	LunchTime     *timecore.Clock
	DinnerTime    *timecore.Clock
	BreakfastTime *timecore.Clock
	Date          string
	Budget        *int
}

var validModes = map[string]oracle.Mode{
	"transit":   oracle.ModeTransit,
	"driving":   oracle.ModeDriving,
	"walking":   oracle.ModeWalking,
	"bicycling": oracle.ModeBicycling,
}

// ValidateTripRequirement checks required fields, fills optional ones with
// spec defaults, and returns a TripRequirement ready for the planner.
func ValidateTripRequirement(in TripRequirementInput) (TripRequirement, error) {
	start, err := timecore.Parse(in.StartTime)
	if err != nil {
		return TripRequirement{}, badInput("start_time", err.Error())
	}
	end, err := timecore.Parse(in.EndTime)
	if err != nil {
		return TripRequirement{}, badInput("end_time", err.Error())
	}
	if start >= end {
		return TripRequirement{}, badInput("start_time", "must be strictly before end_time")
	}

	startPoint := in.StartPoint
	if startPoint == "" {
		startPoint = defaultStartName
	}
	endPoint := in.EndPoint
	if endPoint == "" {
		endPoint = startPoint
	}

	modeKey := in.TransportMode
	if modeKey == "" {
		modeKey = string(DefaultMode)
	}
	mode, ok := validModes[modeKey]
	if !ok {
		return TripRequirement{}, badInput("transport_mode", fmt.Sprintf("unknown mode %q", modeKey))
	}

	distance := in.DistanceKm
	if distance <= 0 {
		distance = DefaultDistanceKm
	}

	lunch, err := optionalClock(in.LunchTime, DefaultLunchTime)
	if err != nil {
		return TripRequirement{}, badInput("lunch_time", err.Error())
	}
	dinner, err := optionalClock(in.DinnerTime, DefaultDinnerTime)
	if err != nil {
		return TripRequirement{}, badInput("dinner_time", err.Error())
	}
	breakfast, err := optionalClock(in.BreakfastTime, "")
	if err != nil {
		return TripRequirement{}, badInput("breakfast_time", err.Error())
	}

	if in.Date != "" {
		if err := validateMonthDay(in.Date); err != nil {
			return TripRequirement{}, badInput("date", err.Error())
		}
	}

	return TripRequirement{
		StartTime:     start,
		EndTime:       end,
		StartPoint:    startPoint,
		EndPoint:      endPoint,
		TransportMode: mode,
		DistanceKm:    distance,
		LunchTime:     lunch,
		DinnerTime:    dinner,
		BreakfastTime: breakfast,
		Date:          in.Date,
		Budget:        in.Budget,
	}, nil
}

// optionalClock parses s. "none" is an explicit opt-out and yields nil. ""
// means not given: when fallback is non-empty, fallback is parsed and used
// instead (the default-filling for lunch/dinner), otherwise the result is nil.
func optionalClock(s, fallback string) (*timecore.Clock, error) {
	if s == "none" {
		return nil, nil
	}
	if s == "" {
		if fallback == "" {
			return nil, nil
		}
		s = fallback
	}
	c, err := timecore.Parse(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func validateMonthDay(s string) error {
	if len(s) != 5 || s[2] != '-' {
		return fmt.Errorf("bad date format: %q (want MM-DD)", s)
	}
	month := (int(s[0]-'0') * 10) + int(s[1]-'0')
	day := (int(s[3]-'0') * 10) + int(s[4]-'0')
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' || s[3] < '0' || s[3] > '9' || s[4] < '0' || s[4] > '9' {
		return fmt.Errorf("bad date format: %q (want MM-DD)", s)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("bad month in date %q", s)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("bad day in date %q", s)
	}
	return nil
}

// ValidatePlaceRecord checks a catalog record's coordinates, rating range,
// and dwell time. Hours are validated separately at parse time
// (catalog.ParseHoursJSON already rejects malformed slots).
func ValidatePlaceRecord(p catalog.PlaceRecord) error {
	if p.Name == "" {
		return badInput("name", "must not be empty")
	}
	if err := geocore.Validate(p.Lat, p.Lon); err != nil {
		return badInput("lat/lon", err.Error())
	}
	if p.Rating < 0 || p.Rating > 5 {
		return badInput("rating", "must be within [0, 5]")
	}
	if p.DurationMin < 0 {
		return badInput("duration_min", "must be non-negative")
	}
	return nil
}
