// Package catalog holds the POI catalog: the PlaceRecord value object, its
// opening-hours query logic, CSV ingest, and (optionally) Postgres/Redis
// backed storage for a hosted catalog service.
package catalog

import (
	"fmt"

	"itinerary/internal/geocore"
	"itinerary/internal/timecore"
)

// Label is a POI category. The set of meal-capable labels drives meal-window
// scoring and selection.
type Label string

const (
	LabelAttraction  Label = "attraction"
	LabelRestaurant  Label = "restaurant"
	LabelStreetFood  Label = "street-food"
	LabelNightMarket Label = "night-market"
	LabelShopping    Label = "shopping"
)

// MealCapable reports whether a label may satisfy a meal-time requirement.
func (l Label) MealCapable() bool {
	switch l {
	case LabelRestaurant, LabelStreetFood, LabelNightMarket:
		return true
	default:
		return false
	}
}

// Period is the coarse time-of-day tag attached to a POI.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodLunch     Period = "lunch"
	PeriodAfternoon Period = "afternoon"
	PeriodDinner    Period = "dinner"
	PeriodNight     Period = "night"
)

// PeriodOrder is the ordered list used to compute "periods apart".
var PeriodOrder = []Period{PeriodMorning, PeriodLunch, PeriodAfternoon, PeriodDinner, PeriodNight}

func (p Period) index() int {
	for i, candidate := range PeriodOrder {
		if candidate == p {
			return i
		}
	}
	return -1
}

// PeriodsApart returns the absolute distance between two periods in
// PeriodOrder. Returns -1 if either period is unrecognized.
func PeriodsApart(a, b Period) int {
	ia, ib := a.index(), b.index()
	if ia < 0 || ib < 0 {
		return -1
	}
	d := ia - ib
	if d < 0 {
		d = -d
	}
	return d
}

// Slot is a single opening-hours window within a day. A slot with
// End < Start denotes an overnight slot, wrapping past midnight.
type Slot struct {
	Start timecore.Clock
	End   timecore.Clock
}

// Weekday is 1 (Monday) through 7 (Sunday), matching the Go convention
// adjusted so every day of the week has an explicit, non-zero key.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Hours maps each weekday to its ordered list of opening slots. A missing
// key or an empty slice both mean "closed all day".
type Hours map[Weekday][]Slot

// PlaceRecord is a catalog entry. Treated as immutable once loaded and
// checked by validator.ValidatePlaceRecord; the engine never mutates a
// PlaceRecord after load.
type PlaceRecord struct {
	Name        string
	Lat         float64
	Lon         float64
	Rating      float64
	DurationMin int
	Label       Label
	Period      Period
	Hours       Hours
}

// Coordinate returns the record's position as a geocore.Coordinate.
func (p PlaceRecord) Coordinate() geocore.Coordinate {
	return geocore.Coordinate{Lat: p.Lat, Lon: p.Lon}
}

// IsOpenAt reports whether the place is open at the given weekday/time,
// honoring overnight slots.
func (p PlaceRecord) IsOpenAt(weekday Weekday, at timecore.Clock) bool {
	for _, slot := range p.Hours[weekday] {
		if timecore.InRange(at, slot.Start, slot.End, true) {
			return true
		}
	}
	return false
}

// RemainingMinutes returns the minutes left in the slot that contains `at`
// on `weekday`, and whether such a slot was found.
func (p PlaceRecord) RemainingMinutes(weekday Weekday, at timecore.Clock) (int, bool) {
	for _, slot := range p.Hours[weekday] {
		if timecore.InRange(at, slot.Start, slot.End, true) {
			return timecore.Duration(at, slot.End, true), true
		}
	}
	return 0, false
}

// AvailableSlot names a weekday/slot pair returned by NextAvailable.
type AvailableSlot struct {
	Weekday Weekday
	Slot    Slot
}

// NextAvailable scans the remainder of fromWeekday's slots (those not yet
// elapsed at fromTime) and then the following six days in order, returning
// the first slot found.
func (p PlaceRecord) NextAvailable(fromWeekday Weekday, fromTime timecore.Clock) (AvailableSlot, bool) {
	for _, slot := range p.Hours[fromWeekday] {
		if timecore.InRange(fromTime, slot.Start, slot.End, true) || slot.Start >= fromTime {
			return AvailableSlot{Weekday: fromWeekday, Slot: slot}, true
		}
	}
	for i := 1; i <= 6; i++ {
		wd := nextWeekday(fromWeekday, i)
		slots := p.Hours[wd]
		if len(slots) == 0 {
			continue
		}
		return AvailableSlot{Weekday: wd, Slot: slots[0]}, true
	}
	return AvailableSlot{}, false
}

func nextWeekday(from Weekday, offset int) Weekday {
	idx := (int(from) - 1 + offset) % 7
	return Weekday(idx + 1)
}

// Is24Hour reports whether the place has a single Monday-style slot
// spanning the full day (00:00-23:59) on the given weekday — the
// normalized sentinel for "always open".
func (p PlaceRecord) Is24Hour(weekday Weekday) bool {
	slots := p.Hours[weekday]
	if len(slots) != 1 {
		return false
	}
	return slots[0].Start == 0 && slots[0].End == timecore.MustParse("23:59")
}

func (p PlaceRecord) String() string {
	return fmt.Sprintf("%s (%s/%s)", p.Name, p.Label, p.Period)
}
