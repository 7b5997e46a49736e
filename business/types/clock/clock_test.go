package clock_test

import (
	"errors"
	"testing"

	"github.com/jcpaschoal/smartroom/business/types/clock"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"10:00:00", 600, true},
		{"10:00:30", 0, false},
		{"24:00", 1440, true},
		{"24:00:00", 1440, true},
		{"24:01", 0, false},
		{"25:00", 0, false},
		{"9:30", 0, false},
		{"ten", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := clock.ParseTime(tt.in)
			if tt.ok != (err == nil) {
				t.Fatalf("ParseTime(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			}

			if tt.ok && got.Minutes() != tt.minutes {
				t.Errorf("ParseTime(%q) = %d minutes, want %d", tt.in, got.Minutes(), tt.minutes)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := clock.ParseDate("2026-03-14")
	if err != nil {
		t.Fatalf("Should parse date: %s", err)
	}

	if d.String() != "2026-03-14" {
		t.Errorf("Got %s, want 2026-03-14", d)
	}

	if !d.Before(d.AddDays(1)) {
		t.Error("A date should be before the following day")
	}

	for _, bad := range []string{"2026-02-30", "14/03/2026", ""} {
		if _, err := clock.ParseDate(bad); err == nil {
			t.Errorf("Should not parse %q", bad)
		}
	}
}

func TestNewRange(t *testing.T) {
	if _, err := clock.NewRange(clock.MustParseTime("10:00"), clock.MustParseTime("09:00")); !errors.Is(err, clock.ErrInvalidRange) {
		t.Errorf("Got %v, want ErrInvalidRange", err)
	}

	if _, err := clock.NewRange(clock.MustParseTime("10:00"), clock.MustParseTime("10:00")); !errors.Is(err, clock.ErrInvalidRange) {
		t.Errorf("An empty range should be rejected, got %v", err)
	}

	r := clock.MustNewRange("09:00", "10:30")
	if r.Duration().Minutes() != 90 {
		t.Errorf("Got duration %s, want 90m", r.Duration())
	}

	late := clock.MustNewRange("23:00", "24:00")
	if late.String() != "23:00-24:00" {
		t.Errorf("Got %s, want 23:00-24:00", late)
	}

	if _, err := clock.NewRange(clock.MustParseTime("24:00"), clock.MustParseTime("24:00")); !errors.Is(err, clock.ErrInvalidRange) {
		t.Errorf("24:00 cannot start a range, got %v", err)
	}

	if _, err := clock.FromMinutes(24*60 + 1); err == nil {
		t.Error("Minutes past 24:00 should be rejected")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"09:00-10:00", "10:00-11:00", false},
		{"10:00-11:00", "09:00-10:00", false},
		{"09:00-10:00", "09:30-10:30", true},
		{"09:00-12:00", "10:00-11:00", true},
		{"09:00-10:00", "09:00-10:00", true},
		{"08:00-09:00", "13:00-14:00", false},
	}

	parse := func(s string) clock.Range {
		return clock.MustNewRange(s[:5], s[6:])
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			a, b := parse(tt.a), parse(tt.b)
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}

			if a.Overlaps(b) != b.Overlaps(a) {
				t.Error("Overlaps should be symmetric")
			}
		})
	}
}

func TestOverlapsExhaustive(t *testing.T) {
	const step = 15
	for s1 := 0; s1 < 4*60; s1 += step {
		for e1 := s1 + step; e1 <= 4*60; e1 += step {
			for s2 := 0; s2 < 4*60; s2 += step {
				for e2 := s2 + step; e2 <= 4*60; e2 += step {
					a := mustRange(t, s1, e1)
					b := mustRange(t, s2, e2)

					shared := false
					for m := s1; m < e1; m++ {
						if m >= s2 && m < e2 {
							shared = true
							break
						}
					}

					if a.Overlaps(b) != shared {
						t.Fatalf("[%d,%d) vs [%d,%d): Overlaps = %v, shared minute = %v", s1, e1, s2, e2, a.Overlaps(b), shared)
					}
				}
			}
		}
	}
}

func mustRange(t *testing.T, start, end int) clock.Range {
	t.Helper()

	s, err := clock.FromMinutes(start)
	if err != nil {
		t.Fatal(err)
	}

	e, err := clock.FromMinutes(end)
	if err != nil {
		t.Fatal(err)
	}

	r, err := clock.NewRange(s, e)
	if err != nil {
		t.Fatal(err)
	}

	return r
}
