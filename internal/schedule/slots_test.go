package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labreserve/internal/model"
)

func slotStates(grid []Slot) []SlotState {
	states := make([]SlotState, len(grid))
	for i, s := range grid {
		states[i] = s.State
	}
	return states
}

func TestBuildSlotGrid_EmptySchedule(t *testing.T) {
	grid := BuildSlotGrid(8, 12, nil, nil)

	assert.Len(t, grid, 4)
	assert.Equal(t, "08:00", grid[0].Time)
	assert.Equal(t, "11:00", grid[3].Time)
	for _, slot := range grid {
		assert.Equal(t, SlotAvailable, slot.State)
		assert.Empty(t, slot.ReservedBy)
	}
}

func TestBuildSlotGrid_OccupiedSlots(t *testing.T) {
	existing := []model.Reservation{
		reservationAt("09:00", 2, model.StatusApproved, "alice"),
	}

	grid := BuildSlotGrid(8, 12, existing, nil)

	assert.Equal(t, []SlotState{SlotAvailable, SlotOccupied, SlotOccupied, SlotAvailable}, slotStates(grid))
	assert.Equal(t, "alice", grid[1].ReservedBy)
	assert.Equal(t, "alice", grid[2].ReservedBy)
	assert.Empty(t, grid[0].ReservedBy)
}

func TestBuildSlotGrid_SelectedAndConflicting(t *testing.T) {
	existing := []model.Reservation{
		reservationAt("09:00", 1, model.StatusApproved, "alice"),
	}
	candidate := &Interval{Start: 9*60 + 30, End: 11*60 + 30}

	grid := BuildSlotGrid(8, 13, existing, candidate)

	// 08 available, 09 occupied+selected, 10 and 11 selected, 12 available.
	assert.Equal(t, []SlotState{SlotAvailable, SlotConflicting, SlotSelected, SlotSelected, SlotAvailable}, slotStates(grid))
	assert.Equal(t, "alice", grid[1].ReservedBy)
}

func TestBuildSlotGrid_InactiveStatusesIgnored(t *testing.T) {
	existing := []model.Reservation{
		reservationAt("09:00", 1, model.StatusCancelled, "alice"),
		reservationAt("10:00", 1, model.StatusRejected, "bob"),
	}

	grid := BuildSlotGrid(9, 11, existing, nil)

	assert.Equal(t, []SlotState{SlotAvailable, SlotAvailable}, slotStates(grid))
}

func TestBuildSlotGrid_HourClamping(t *testing.T) {
	grid := BuildSlotGrid(-3, 30, nil, nil)

	assert.Len(t, grid, 24)
	assert.Equal(t, "00:00", grid[0].Time)
	assert.Equal(t, "23:00", grid[23].Time)
}

func TestBuildSlotGrid_Deterministic(t *testing.T) {
	existing := []model.Reservation{
		reservationAt("09:00", 2, model.StatusApproved, "alice"),
		reservationAt("14:00", 1, model.StatusPending, "bob"),
	}
	candidate := &Interval{Start: 10 * 60, End: 12 * 60}

	first := BuildSlotGrid(8, 18, existing, candidate)
	second := BuildSlotGrid(8, 18, existing, candidate)

	assert.Equal(t, first, second)
}
