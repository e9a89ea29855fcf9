// Package schedule holds the pure time arithmetic the booking engine is
// built on: interval overlap, the cancellation window, and the free-slot
// grid. Nothing here touches storage or the clock.
package schedule

import (
	"fmt"
	"time"
)

// AddDuration returns the end instant of a booking that starts at start and
// runs for the given number of minutes.
func AddDuration(start time.Time, minutes int) time.Time {
	return start.Add(time.Duration(minutes) * time.Minute)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Identical intervals overlap; back-to-back
// intervals (aEnd == bStart) do not.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	// aStart inside [bStart, bEnd)
	if !aStart.Before(bStart) && aStart.Before(bEnd) {
		return true
	}
	// aEnd inside (bStart, bEnd]
	if aEnd.After(bStart) && !aEnd.After(bEnd) {
		return true
	}
	// A fully contains B
	if !aStart.After(bStart) && !aEnd.Before(bEnd) {
		return true
	}
	return false
}

// WithinCancellationWindow reports whether an appointment starting at start
// may still be self-cancelled at now, given the required notice. Exactly at
// the boundary the answer is false.
func WithinCancellationWindow(start, now time.Time, window time.Duration) bool {
	return start.After(now.Add(window))
}

// DayBounds returns the half-open [00:00, +24h) range of t's calendar day
// in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// TimeOfDay formats t's wall-clock time as "HH:MM".
func TimeOfDay(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ParseTimeOfDay converts an "HH:MM" string to minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return h*60 + m, nil
}
