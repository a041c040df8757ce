package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Recommendation maps a reported symptom to a suggested therapy.
type Recommendation struct {
	ID               gocql.UUID `json:"id"`
	UserID           string     `json:"user_id"`
	Symptom          string     `json:"symptom"`
	SuggestedTherapy string     `json:"suggested_therapy"`
	Source           string     `json:"source"`
	CreatedAt        time.Time  `json:"created_at"`
}
