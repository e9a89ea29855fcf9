package schedule

import "time"

// Interval is a booked time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot is one candidate start time on the booking grid. Taken slots are
// included with Available=false so callers can render the full day.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DaySlots generates the candidate start times for one availability window
// on the given calendar date. Candidates step through the window on the
// grid interval; a candidate whose end would spill past the window is never
// generated. A candidate is unavailable when it overlaps a busy interval or
// when it starts on now's calendar day less than leadTime from now.
func DaySlots(date time.Time, windowStart, windowEnd string, duration, step, leadTime time.Duration, busy []Interval, now time.Time) []Slot {
	startMin, err := ParseTimeOfDay(windowStart)
	if err != nil {
		return nil
	}
	endMin, err := ParseTimeOfDay(windowEnd)
	if err != nil {
		return nil
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	sameDay := sameCalendarDay(date, now)

	stepMin := int(step / time.Minute)
	durMin := int(duration / time.Minute)
	if stepMin <= 0 || durMin <= 0 {
		return nil
	}

	var slots []Slot
	for m := startMin; m+durMin <= endMin; m += stepMin {
		slotStart := midnight.Add(time.Duration(m) * time.Minute)
		slotEnd := slotStart.Add(duration)

		available := true
		for _, b := range busy {
			if Overlaps(slotStart, slotEnd, b.Start, b.End) {
				available = false
				break
			}
		}
		if available && sameDay && slotStart.Before(now.Add(leadTime)) {
			available = false
		}

		slots = append(slots, Slot{Time: TimeOfDay(slotStart), Available: available})
	}
	return slots
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
