package schedule

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestAddDuration(t *testing.T) {
	start := at(9, 0)
	end := AddDuration(start, 45)
	if want := at(9, 45); !end.Equal(want) {
		t.Fatalf("end = %v, want %v", end, want)
	}
	if back := end.Add(-45 * time.Minute); !back.Equal(start) {
		t.Fatalf("round-trip = %v, want %v", back, start)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"back to back", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"back to back reversed", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"partial overlap start", at(9, 30), at(10, 30), at(9, 0), at(10, 0), true},
		{"partial overlap end", at(8, 30), at(9, 30), at(9, 0), at(10, 0), true},
		{"a contains b", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"b contains a", at(10, 0), at(11, 0), at(9, 0), at(12, 0), true},
		{"disjoint before", at(7, 0), at(8, 0), at(9, 0), at(10, 0), false},
		{"disjoint after", at(11, 0), at(12, 0), at(9, 0), at(10, 0), false},
		{"shared start different end", at(9, 0), at(9, 30), at(9, 0), at(10, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if sym := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); sym != tc.want {
				t.Fatalf("Overlaps reversed = %v, want %v", sym, tc.want)
			}
		})
	}
}

func TestWithinCancellationWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"well outside window", now.Add(48 * time.Hour), true},
		{"just past boundary", now.Add(24*time.Hour + time.Minute), true},
		{"exactly at boundary", now.Add(24 * time.Hour), false},
		{"inside window", now.Add(2 * time.Hour), false},
		{"already started", now.Add(-time.Hour), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinCancellationWindow(tc.start, now, window); got != tc.want {
				t.Fatalf("WithinCancellationWindow = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2026, 3, 10, 15, 42, 7, 0, time.UTC))
	if want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
	if want := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Fatalf("end = %v, want %v", end, want)
	}
}

func TestTimeOfDay(t *testing.T) {
	if got := TimeOfDay(at(9, 5)); got != "09:05" {
		t.Fatalf("TimeOfDay = %q, want %q", got, "09:05")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"garbage", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("minutes = %d, want %d", got, tc.want)
			}
		})
	}
}
