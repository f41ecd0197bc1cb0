package model

import (
	"fmt"
	"time"
)

// ReservationStatus represents the lifecycle status of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusApproved  ReservationStatus = "APPROVED"
	StatusRejected  ReservationStatus = "REJECTED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// ParseStatus validates a wire status value against the enum.
func ParseStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("invalid status %q", s)
	}
}

// statusTransitions is the single transition table consulted before any
// status mutation. REJECTED and CANCELLED are terminal.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the transition table permits moving
// from s to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted out of s.
func (s ReservationStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// Active reports whether a reservation in this status occupies its time
// interval for conflict purposes.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Reservation represents a booking of a lab for a half-open time window
// [Time, Time+Duration hours) on a civil date.
type Reservation struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	LabID     uint              `json:"lab_id" gorm:"not null;index:idx_reservations_lab_date"`
	UserID    uint              `json:"user_id" gorm:"not null;index"`
	Date      Date              `json:"date" gorm:"not null;index:idx_reservations_lab_date"`
	Time      string            `json:"time" gorm:"type:varchar(8);not null"`
	Duration  int               `json:"duration" gorm:"not null"`
	Status    ReservationStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relations, joined at read time for display only.
	Lab  *Lab  `json:"lab,omitempty" gorm:"foreignKey:LabID;constraint:OnDelete:CASCADE"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserName returns the display name of the requesting user, if joined.
func (r *Reservation) UserName() string {
	if r.User == nil {
		return ""
	}
	return r.User.Name
}
