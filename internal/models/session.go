package models

import (
	"time"

	"github.com/gocql/gocql"
)

// TherapySession statuses: booked → confirmed → completed, or cancelled.
type TherapySession struct {
	ID             gocql.UUID `json:"id"`
	PractitionerID gocql.UUID `json:"practitioner_id"`
	UserID         string     `json:"user_id"`
	Date           time.Time  `json:"date"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
