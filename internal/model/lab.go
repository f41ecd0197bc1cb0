package model

import "time"

// Lab represents a bookable laboratory.
// Available only gates new-reservation flows; flipping it off does not
// touch reservations that already exist.
type Lab struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;index"`
	Location    string    `json:"location" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Capacity    int       `json:"capacity" gorm:"not null"`
	Available   bool      `json:"available" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
