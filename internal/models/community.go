package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Question is a public health question posted by a patient.
type Question struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

// Answer is a practitioner's reply to a question.
type Answer struct {
	ID             gocql.UUID `json:"id"`
	QuestionID     gocql.UUID `json:"question_id"`
	PractitionerID string     `json:"practitioner_id"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
}
