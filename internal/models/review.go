package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Review struct {
	ID             gocql.UUID `json:"id"`
	PractitionerID gocql.UUID `json:"practitioner_id"`
	UserID         string     `json:"user_id"`
	Rating         int        `json:"rating"` // 1..5
	Comment        string     `json:"comment,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
