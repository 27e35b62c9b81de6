package timeservice

import (
	"testing"

	"itinerary/internal/catalog"
	"itinerary/internal/timecore"
)

func clockPtr(s string) *timecore.Clock {
	c := timecore.MustParse(s)
	return &c
}

func TestIsMealTime_Window(t *testing.T) {
	svc := New(clockPtr("12:00"), clockPtr("18:00"))

	cases := []struct {
		t    string
		want bool
	}{
		{"11:00", true},
		{"13:00", true},
		{"10:59", false},
		{"17:00", true},
		{"19:00", true},
		{"15:00", false},
	}
	for _, c := range cases {
		got := svc.IsMealTime(timecore.MustParse(c.t))
		if got != c.want {
			t.Errorf("IsMealTime(%s) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestIsMealTime_NoMealsConfigured(t *testing.T) {
	svc := New(nil, nil)
	if svc.IsMealTime(timecore.MustParse("12:00")) {
		t.Error("expected no meal time with nil lunch/dinner")
	}
}

func TestCurrentPeriod_FixedThresholds(t *testing.T) {
	svc := New(nil, nil)
	cases := []struct {
		t    string
		want catalog.Period
	}{
		{"08:00", catalog.PeriodMorning},
		{"12:00", catalog.PeriodLunch},
		{"15:00", catalog.PeriodAfternoon},
		{"18:00", catalog.PeriodDinner},
		{"22:00", catalog.PeriodNight},
	}
	for _, c := range cases {
		got := svc.CurrentPeriod(timecore.MustParse(c.t))
		if got != c.want {
			t.Errorf("CurrentPeriod(%s) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestCurrentPeriod_MealWindowOverridesThresholds(t *testing.T) {
	// A 13:30 lunch configured means 14:15 (within +/-60) should classify
	// as lunch even though the fixed thresholds would call it afternoon.
	svc := New(clockPtr("13:30"), nil)
	got := svc.CurrentPeriod(timecore.MustParse("14:15"))
	if got != catalog.PeriodLunch {
		t.Errorf("CurrentPeriod(14:15) with late lunch = %v, want lunch", got)
	}
}
