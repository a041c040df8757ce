package models

import (
	"time"

	"github.com/gocql/gocql"
)

// DefaultConsultationFee applies when a profile has no fee of its own.
const DefaultConsultationFee = 500.0

type PractitionerProfile struct {
	ID              gocql.UUID `json:"id" db:"practitioner_id"`
	UserID          string     `json:"user_id" db:"user_id"`
	Name            string     `json:"name" db:"name"`
	Specialization  string     `json:"specialization" db:"specialization"`
	Bio             string     `json:"bio" db:"bio"`
	ConsultationFee float64    `json:"consultation_fee" db:"consultation_fee"`
	StartHour       int        `json:"start_hour" db:"start_hour"`
	EndHour         int        `json:"end_hour" db:"end_hour"`
	Verified        bool       `json:"verified" db:"verified"`
	DocumentURLs    []string   `json:"document_urls" db:"document_urls"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// Fee resolves the bookable fee: the profile's own when set, else the default.
func (p PractitionerProfile) Fee() float64 {
	if p.ConsultationFee > 0 {
		return p.ConsultationFee
	}
	return DefaultConsultationFee
}
