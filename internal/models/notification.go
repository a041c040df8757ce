package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Notification levels: success, info, warning, error.
type Notification struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"user_id"`
	Message   string     `json:"message"`
	Level     string     `json:"level"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}
