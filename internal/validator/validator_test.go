package validator

import (
	"testing"

	"itinerary/internal/catalog"
	"itinerary/internal/oracle"
)

func TestValidateTripRequirement_FillsDefaults(t *testing.T) {
	in := TripRequirementInput{StartTime: "09:00", EndTime: "18:00"}
	got, err := ValidateTripRequirement(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StartPoint != defaultStartName {
		t.Errorf("expected default start point, got %q", got.StartPoint)
	}
	if got.EndPoint != got.StartPoint {
		t.Errorf("expected end_point to default to start_point, got %q", got.EndPoint)
	}
	if got.TransportMode != oracle.ModeDriving {
		t.Errorf("expected default mode driving, got %v", got.TransportMode)
	}
	if got.DistanceKm != DefaultDistanceKm {
		t.Errorf("expected default distance %v, got %v", DefaultDistanceKm, got.DistanceKm)
	}
	if got.LunchTime == nil || got.DinnerTime == nil {
		t.Fatal("expected lunch/dinner to default, not be nil")
	}
}

func TestValidateTripRequirement_RejectsStartAfterEnd(t *testing.T) {
	in := TripRequirementInput{StartTime: "18:00", EndTime: "09:00"}
	_, err := ValidateTripRequirement(in)
	if err == nil {
		t.Fatal("expected error for start_time >= end_time")
	}
}

func TestValidateTripRequirement_RejectsUnknownMode(t *testing.T) {
	in := TripRequirementInput{StartTime: "09:00", EndTime: "18:00", TransportMode: "teleport"}
	_, err := ValidateTripRequirement(in)
	if err == nil {
		t.Fatal("expected error for unknown transport mode")
	}
}

func TestValidateTripRequirement_NoneMealsStayNil(t *testing.T) {
	in := TripRequirementInput{StartTime: "09:00", EndTime: "18:00", LunchTime: "none", DinnerTime: "none"}
	got, err := ValidateTripRequirement(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LunchTime != nil || got.DinnerTime != nil {
		t.Error("expected explicit \"none\" to stay nil, not fall back to defaults")
	}
}

func TestValidateTripRequirement_RejectsBadDate(t *testing.T) {
	in := TripRequirementInput{StartTime: "09:00", EndTime: "18:00", Date: "13-40"}
	_, err := ValidateTripRequirement(in)
	if err == nil {
		t.Fatal("expected error for out-of-range month")
	}
}

func TestValidatePlaceRecord(t *testing.T) {
	ok := catalog.PlaceRecord{Name: "A", Lat: 25, Lon: 121, Rating: 4, DurationMin: 30}
	if err := ValidatePlaceRecord(ok); err != nil {
		t.Fatalf("unexpected error for valid record: %v", err)
	}

	bad := ok
	bad.Lat = 999
	if err := ValidatePlaceRecord(bad); err == nil {
		t.Error("expected error for out-of-range latitude")
	}

	badRating := ok
	badRating.Rating = 6
	if err := ValidatePlaceRecord(badRating); err == nil {
		t.Error("expected error for out-of-range rating")
	}

	noName := ok
	noName.Name = ""
	if err := ValidatePlaceRecord(noName); err == nil {
		t.Error("expected error for empty name")
	}
}
