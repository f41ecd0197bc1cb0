package schedule

import (
	"sort"

	"labreserve/internal/model"
)

// Conflict is the client-facing projection of an overlapping
// reservation. It deliberately carries only the display name of the
// other user, never the full record.
type Conflict struct {
	Time     string                  `json:"time"`
	Duration int                     `json:"duration"`
	User     string                  `json:"user"`
	Status   model.ReservationStatus `json:"status"`
}

// Availability is the verdict for a candidate interval.
type Availability struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// CheckAvailability tests a candidate interval against the existing
// reservations for the same lab and date. Callers are expected to pass
// only non-terminal records; reservations whose status does not occupy
// time are skipped regardless. Conflicts come back ascending by start
// time.
func CheckAvailability(candidate Interval, existing []model.Reservation) Availability {
	type hit struct {
		start    int
		conflict Conflict
	}
	var hits []hit
	for _, res := range existing {
		if !res.Status.Active() {
			continue
		}
		iv, err := NewInterval(res.Time, res.Duration)
		if err != nil {
			// Rows are validated at creation; an unparsable row
			// cannot be placed on the timeline.
			continue
		}
		if candidate.Overlaps(iv) {
			hits = append(hits, hit{
				start: iv.Start,
				conflict: Conflict{
					Time:     FormatClock(iv.Start),
					Duration: res.Duration,
					User:     res.UserName(),
					Status:   res.Status,
				},
			})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	out := Availability{Available: len(hits) == 0}
	for _, h := range hits {
		out.Conflicts = append(out.Conflicts, h.conflict)
	}
	return out
}
