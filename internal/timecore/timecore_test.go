package timecore

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Clock
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "noon", in: "12:00", want: 720},
		{name: "end of day", in: "23:59", want: 1439},
		{name: "missing leading zero", in: "9:30", wantErr: true},
		{name: "bad hour", in: "24:00", wantErr: true},
		{name: "bad minute", in: "12:60", wantErr: true},
		{name: "garbage", in: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInRange_Inclusive(t *testing.T) {
	start := MustParse("09:00")
	end := MustParse("17:00")

	if !InRange(start, start, end, false) {
		t.Error("start should be in range (inclusive)")
	}
	if !InRange(end, start, end, false) {
		t.Error("end should be in range (inclusive)")
	}
	if InRange(MustParse("08:59"), start, end, false) {
		t.Error("08:59 should not be in range")
	}
}

func TestInRange_Overnight(t *testing.T) {
	start := MustParse("17:00")
	end := MustParse("02:00")

	cases := []struct {
		t    string
		want bool
	}{
		{"17:00", true},
		{"23:30", true},
		{"00:30", true},
		{"02:00", true},
		{"02:01", false},
		{"16:59", false},
	}
	for _, c := range cases {
		got := InRange(MustParse(c.t), start, end, true)
		if got != c.want {
			t.Errorf("InRange(%s, 17:00, 02:00, overnight) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestInRange_NotOvernightIgnoresWrap(t *testing.T) {
	start := MustParse("17:00")
	end := MustParse("02:00")
	if InRange(MustParse("23:30"), start, end, false) {
		t.Error("without allowOvernight, a wrapping range should not contain 23:30")
	}
}

func TestAddMinutes_Wraps(t *testing.T) {
	got := AddMinutes(MustParse("23:50"), 20)
	if got != MustParse("00:10") {
		t.Errorf("AddMinutes(23:50, +20) = %v, want 00:10", got)
	}
}

func TestAddMinutes_Negative(t *testing.T) {
	got := AddMinutes(MustParse("00:10"), -20)
	if got != MustParse("23:50") {
		t.Errorf("AddMinutes(00:10, -20) = %v, want 23:50", got)
	}
}

func TestDuration_Plain(t *testing.T) {
	got := Duration(MustParse("09:00"), MustParse("10:30"), false)
	if got != 90 {
		t.Errorf("Duration(09:00, 10:30) = %d, want 90", got)
	}
}

func TestDuration_Overnight(t *testing.T) {
	got := Duration(MustParse("23:00"), MustParse("02:00"), true)
	if got != 180 {
		t.Errorf("Duration(23:00, 02:00, overnight) = %d, want 180", got)
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "23:59"} {
		c := MustParse(s)
		if c.String() != s {
			t.Errorf("round trip %q -> %v -> %q", s, c, c.String())
		}
	}
}
