package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labreserve/internal/model"
)

func reservationAt(clock string, duration int, status model.ReservationStatus, userName string) model.Reservation {
	return model.Reservation{
		Time:     clock,
		Duration: duration,
		Status:   status,
		User:     &model.User{Name: userName},
	}
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name      string
		clock     string
		duration  int
		existing  []model.Reservation
		available bool
		conflicts int
	}{
		{
			name:      "empty schedule",
			clock:     "09:00",
			duration:  2,
			existing:  nil,
			available: true,
		},
		{
			name:     "overlap with approved reservation",
			clock:    "10:30",
			duration: 1,
			existing: []model.Reservation{
				reservationAt("09:00", 2, model.StatusApproved, "alice"),
			},
			available: false,
			conflicts: 1,
		},
		{
			name:     "overlap with pending reservation",
			clock:    "09:30",
			duration: 1,
			existing: []model.Reservation{
				reservationAt("09:00", 1, model.StatusPending, "alice"),
			},
			available: false,
			conflicts: 1,
		},
		{
			name:     "abutting reservation does not conflict",
			clock:    "11:00",
			duration: 1,
			existing: []model.Reservation{
				reservationAt("09:00", 2, model.StatusApproved, "alice"),
			},
			available: true,
		},
		{
			name:     "cancelled reservation does not occupy time",
			clock:    "09:00",
			duration: 2,
			existing: []model.Reservation{
				reservationAt("09:00", 2, model.StatusCancelled, "alice"),
			},
			available: true,
		},
		{
			name:     "rejected reservation does not occupy time",
			clock:    "09:00",
			duration: 2,
			existing: []model.Reservation{
				reservationAt("09:00", 2, model.StatusRejected, "alice"),
			},
			available: true,
		},
		{
			name:     "multiple overlaps",
			clock:    "09:00",
			duration: 4,
			existing: []model.Reservation{
				reservationAt("12:00", 1, model.StatusApproved, "carol"),
				reservationAt("10:00", 1, model.StatusApproved, "bob"),
				reservationAt("09:00", 1, model.StatusPending, "alice"),
			},
			available: false,
			conflicts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate, err := NewInterval(tt.clock, tt.duration)
			assert.NoError(t, err)

			got := CheckAvailability(candidate, tt.existing)
			assert.Equal(t, tt.available, got.Available)
			assert.Len(t, got.Conflicts, tt.conflicts)
		})
	}
}

func TestCheckAvailability_ConflictProjection(t *testing.T) {
	candidate, err := NewInterval("09:00", 4)
	assert.NoError(t, err)

	existing := []model.Reservation{
		reservationAt("11:00", 1, model.StatusApproved, "bob"),
		reservationAt("09:30:00", 2, model.StatusPending, "alice"),
	}

	got := CheckAvailability(candidate, existing)
	assert.False(t, got.Available)
	assert.Len(t, got.Conflicts, 2)

	// Conflicts come back ascending by start time, with seconds
	// stripped from the rendered clock.
	assert.Equal(t, "09:30", got.Conflicts[0].Time)
	assert.Equal(t, 2, got.Conflicts[0].Duration)
	assert.Equal(t, "alice", got.Conflicts[0].User)
	assert.Equal(t, model.StatusPending, got.Conflicts[0].Status)

	assert.Equal(t, "11:00", got.Conflicts[1].Time)
	assert.Equal(t, "bob", got.Conflicts[1].User)
}

func TestCheckAvailability_MissingUserJoin(t *testing.T) {
	candidate, err := NewInterval("09:00", 1)
	assert.NoError(t, err)

	existing := []model.Reservation{
		{Time: "09:00", Duration: 1, Status: model.StatusApproved},
	}

	got := CheckAvailability(candidate, existing)
	assert.False(t, got.Available)
	assert.Equal(t, "", got.Conflicts[0].User)
}
