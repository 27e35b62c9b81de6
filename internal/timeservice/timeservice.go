// Package timeservice classifies the current time of day against the
// trip's configured meal times: whether it is currently a meal window, and
// which coarse period (morning/lunch/afternoon/dinner/night) the clock
// falls into.
package timeservice

import (
	"itinerary/internal/catalog"
	"itinerary/internal/timecore"
)

// MealWindow is the +/- window around a configured meal time within which
// the planner treats the clock as "meal time". Defaults to 60 minutes,
// exposed as a tunable rather than hard-coded so callers may override it.
const MealWindow = 60

// Service classifies a clock value against configured lunch/dinner times.
type Service struct {
	lunchTime  *timecore.Clock
	dinnerTime *timecore.Clock
	mealWindow int
}

// New creates a Service. lunchTime and dinnerTime may be nil when the trip
// requirement specifies "none".
func New(lunchTime, dinnerTime *timecore.Clock) *Service {
	return &Service{lunchTime: lunchTime, dinnerTime: dinnerTime, mealWindow: MealWindow}
}

// WithMealWindow overrides the default +/-60 minute meal window.
func (s *Service) WithMealWindow(minutes int) *Service {
	s.mealWindow = minutes
	return s
}

// IsMealTime reports whether t falls within +/-mealWindow of either
// configured meal time.
func (s *Service) IsMealTime(t timecore.Clock) bool {
	if s.lunchTime != nil && withinWindow(t, *s.lunchTime, s.mealWindow) {
		return true
	}
	if s.dinnerTime != nil && withinWindow(t, *s.dinnerTime, s.mealWindow) {
		return true
	}
	return false
}

func withinWindow(t, center timecore.Clock, window int) bool {
	start := timecore.AddMinutes(center, -window)
	end := timecore.AddMinutes(center, window)
	// The +/-window interval around a meal time never wraps across the full
	// 24h day in practice (window is much smaller than a day), but it can
	// still wrap past midnight for meals near 00:00/24:00.
	return timecore.InRange(t, start, end, true)
}

// CurrentPeriod classifies t into a coarse period. When lunch/dinner times
// are configured, their +/-window takes precedence over the fixed
// thresholds so a late lunch still reads as "lunch".
func (s *Service) CurrentPeriod(t timecore.Clock) catalog.Period {
	if s.lunchTime != nil && withinWindow(t, *s.lunchTime, s.mealWindow) {
		return catalog.PeriodLunch
	}
	if s.dinnerTime != nil && withinWindow(t, *s.dinnerTime, s.mealWindow) {
		return catalog.PeriodDinner
	}

	switch {
	case t < timecore.MustParse("11:00"):
		return catalog.PeriodMorning
	case t < timecore.MustParse("14:00"):
		return catalog.PeriodLunch
	case t < timecore.MustParse("17:00"):
		return catalog.PeriodAfternoon
	case t < timecore.MustParse("20:00"):
		return catalog.PeriodDinner
	default:
		return catalog.PeriodNight
	}
}
