// Package schedule holds the pure time-interval, availability and slot
// projection logic shared by every call site that reasons about
// reservation conflicts. The overlap predicate lives here and only
// here; handlers, services and the slot grid all go through it.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinDurationHours and MaxDurationHours bound a reservation length.
	MinDurationHours = 1
	MaxDurationHours = 24

	minutesPerHour = 60
	minutesPerDay  = 24 * 60
)

// Interval is a half-open [Start, End) window measured in minutes since
// midnight on a single civil date.
type Interval struct {
	Start int
	End   int
}

// ParseClock parses a "HH:MM" time-of-day into minutes since midnight.
// A trailing ":SS" is accepted and truncated.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return h*minutesPerHour + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// NewInterval builds the half-open interval for a booking starting at
// the given clock time and lasting a whole number of hours.
func NewInterval(clock string, durationHours int) (Interval, error) {
	if durationHours < MinDurationHours || durationHours > MaxDurationHours {
		return Interval{}, fmt.Errorf("invalid duration %d: want %d-%d hours",
			durationHours, MinDurationHours, MaxDurationHours)
	}
	start, err := ParseClock(clock)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: start + durationHours*minutesPerHour}, nil
}

// Overlaps reports whether two half-open intervals intersect. Intervals
// that merely touch at an endpoint do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}
