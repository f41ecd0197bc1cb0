package schedule

import "labreserve/internal/model"

// SlotState classifies one display slot of the booking calendar.
type SlotState string

const (
	SlotAvailable   SlotState = "available"
	SlotOccupied    SlotState = "occupied"
	SlotSelected    SlotState = "selected"
	SlotConflicting SlotState = "conflicting"
)

// Slot is one fixed one-hour cell of the display grid.
type Slot struct {
	Time       string    `json:"time"`
	State      SlotState `json:"state"`
	ReservedBy string    `json:"reserved_by,omitempty"`
}

// BuildSlotGrid projects the existing reservations and the current
// candidate selection onto on-the-hour slots from openingHour
// (inclusive) to closingHour (exclusive). A slot [h:00, h+1:00) is
// occupied iff it overlaps any active reservation, selected iff it
// overlaps the candidate, and conflicting iff both. The projection is a
// pure function of its inputs: identical inputs always yield an
// identical grid.
func BuildSlotGrid(openingHour, closingHour int, existing []model.Reservation, candidate *Interval) []Slot {
	if openingHour < 0 {
		openingHour = 0
	}
	if closingHour > 24 {
		closingHour = 24
	}

	var grid []Slot
	for h := openingHour; h < closingHour; h++ {
		slotIv := Interval{Start: h * minutesPerHour, End: (h + 1) * minutesPerHour}

		occupied := false
		reservedBy := ""
		for _, res := range existing {
			if !res.Status.Active() {
				continue
			}
			iv, err := NewInterval(res.Time, res.Duration)
			if err != nil {
				continue
			}
			if slotIv.Overlaps(iv) {
				occupied = true
				reservedBy = res.UserName()
				break
			}
		}

		selected := candidate != nil && slotIv.Overlaps(*candidate)

		slot := Slot{Time: FormatClock(slotIv.Start), State: SlotAvailable}
		switch {
		case occupied && selected:
			slot.State = SlotConflicting
			slot.ReservedBy = reservedBy
		case occupied:
			slot.State = SlotOccupied
			slot.ReservedBy = reservedBy
		case selected:
			slot.State = SlotSelected
		}
		grid = append(grid, slot)
	}
	return grid
}
