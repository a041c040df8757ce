package slots

import (
	"context"
	"time"

	"wellnexus_back_end/internal/database"

	"github.com/gocql/gocql"
)

// Source yields the canonical times already booked for a practitioner on a
// date. Tests inject a deterministic fake; never a randomized set.
type Source interface {
	BookedSlots(ctx context.Context, practitionerID gocql.UUID, date string) ([]string, error)
}

// ScyllaSource reads bookings from the therapy_sessions table.
type ScyllaSource struct{}

func (ScyllaSource) BookedSlots(ctx context.Context, practitionerID gocql.UUID, date string) ([]string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, err
	}
	from := day
	to := day.AddDate(0, 0, 1)

	session, err := database.GetBookingsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT date, status FROM therapy_sessions
	                       WHERE practitioner_id = ? AND date >= ? AND date < ? ALLOW FILTERING`,
		practitionerID, from, to).WithContext(ctx).Iter()

	var booked []string
	var at time.Time
	var status string
	for iter.Scan(&at, &status) {
		if status == "cancelled" {
			continue
		}
		booked = append(booked, at.Format("15:04"))
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return booked, nil
}

// ForDate builds the full slot grid for a practitioner's day: generated from
// the availability window, with already-booked times marked non-selectable.
func ForDate(ctx context.Context, src Source, practitionerID gocql.UUID, date string, startHour, endHour int) ([]Slot, error) {
	booked, err := src.BookedSlots(ctx, practitionerID, date)
	if err != nil {
		return nil, err
	}
	return MarkBooked(Generate(startHour, endHour), booked), nil
}
