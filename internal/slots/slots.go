package slots

import "fmt"

// Slot granularity is 30 minutes everywhere; practitioner availability only
// tunes the start/end hours.
const (
	DefaultStartHour = 9
	DefaultEndHour   = 18
)

type Slot struct {
	Time        string `json:"time"`        // canonical 24-hour HH:MM
	DisplayTime string `json:"displayTime"` // 12-hour with AM/PM
	IsBooked    bool   `json:"isBooked"`
}

// Generate produces one slot per 30 minutes in [startHour, endHour).
// Out-of-range bounds fall back to the defaults.
func Generate(startHour, endHour int) []Slot {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultStartHour
	}
	if endHour <= startHour || endHour > 24 {
		endHour = DefaultEndHour
	}

	slots := make([]Slot, 0, (endHour-startHour)*2)
	for hour := startHour; hour < endHour; hour++ {
		for _, minute := range []int{0, 30} {
			t := fmt.Sprintf("%02d:%02d", hour, minute)
			slots = append(slots, Slot{Time: t, DisplayTime: DisplayTime(hour, minute)})
		}
	}
	return slots
}

// DisplayTime renders a 12-hour label; 0 and 12 both display as 12.
func DisplayTime(hour, minute int) string {
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, ampm)
}

// MarkBooked flags every slot whose canonical time appears in booked.
func MarkBooked(slots []Slot, booked []string) []Slot {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}
	for i := range slots {
		_, slots[i].IsBooked = taken[slots[i].Time]
	}
	return slots
}

// Selection is the single-select slot state: selecting a booked slot is a
// no-op, selecting an available one replaces the prior choice, and changing
// the date clears it.
type Selection struct {
	date string
	slot string
}

// SetDate switches the active date, resetting the selection when it changes.
func (s *Selection) SetDate(date string) {
	if s.date != date {
		s.slot = ""
	}
	s.date = date
}

// Select attempts to pick a slot; it reports whether the selection changed.
func (s *Selection) Select(slot Slot) bool {
	if slot.IsBooked {
		return false
	}
	s.slot = slot.Time
	return true
}

func (s *Selection) Clear() {
	s.slot = ""
}

// Selected returns the canonical time of the current selection, "" for none.
func (s *Selection) Selected() string {
	return s.slot
}
