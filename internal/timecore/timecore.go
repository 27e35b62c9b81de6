// Package timecore — pure HH:MM time-of-day arithmetic used throughout the
// planner. Nothing here carries a date; overnight wrap is handled explicitly
// by callers that pass allowOvernight.
package timecore

import (
	"fmt"
	"regexp"
)

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ErrBadTimeFormat is returned when a string does not match "HH:MM".
type ErrBadTimeFormat struct {
	Value string
}

func (e *ErrBadTimeFormat) Error() string {
	return fmt.Sprintf("bad time format: %q (want HH:MM)", e.Value)
}

// Clock is a time-of-day expressed in minutes since 00:00, [0, 1440).
type Clock int

// Parse validates and converts an "HH:MM" string to a Clock.
func Parse(s string) (Clock, error) {
	if !timePattern.MatchString(s) {
		return 0, &ErrBadTimeFormat{Value: s}
	}
	var h, m int
	// The regex above already guarantees two digit groups separated by ':'.
	fmt.Sscanf(s, "%2d:%2d", &h, &m)
	return Clock(h*60 + m), nil
}

// MustParse parses s and panics on error; for fixtures and tests only.
func MustParse(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the clock back to "HH:MM".
func (c Clock) String() string {
	c = c.normalize()
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) normalize() Clock {
	m := int(c) % 1440
	if m < 0 {
		m += 1440
	}
	return Clock(m)
}

// InRange reports whether t falls within [start, end]. When allowOvernight is
// true and end < start, the range is treated as wrapping past midnight:
// t is in range iff t >= start OR t <= end. Both endpoints are inclusive.
func InRange(t, start, end Clock, allowOvernight bool) bool {
	if !allowOvernight || start <= end {
		return start <= t && t <= end
	}
	return t >= start || t <= end
}

// AddMinutes returns t shifted by delta minutes, wrapping modulo 24h. Callers
// that need to detect a day rollover must compare the result against t
// themselves; this function never signals one.
func AddMinutes(t Clock, delta int) Clock {
	return Clock(t + Clock(delta)).normalize()
}

// Duration returns the number of minutes from start to end. When
// allowOvernight is true and end < start, the interval is treated as
// wrapping past midnight: (1440 - start) + end. Otherwise it is the plain
// difference end - start, which callers should only pass when they already
// know start <= end.
func Duration(start, end Clock, allowOvernight bool) int {
	d := int(end) - int(start)
	if d < 0 && allowOvernight {
		d += 1440
	}
	return d
}
