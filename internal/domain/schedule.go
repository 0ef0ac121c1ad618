package domain

import (
	"fmt"
	"strings"
)

// Period is one of the three time buckets of an itinerary day.
type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
)

// Periods lists the buckets in display order.
var Periods = []Period{Morning, Afternoon, Evening}

// ParsePeriod converts user input ("Morning", " evening ") to a Period.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Morning, Afternoon, Evening:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", ErrValidation, s)
}

// Day is one column of the itinerary grid. Each period holds an ordered list
// of slots; a nil entry is an empty slot.
type Day struct {
	ID        int           `json:"id"`
	Morning   []*Attraction `json:"morning"`
	Afternoon []*Attraction `json:"afternoon"`
	Evening   []*Attraction `json:"evening"`
}

// Slots returns a pointer to the bucket for p, or nil for an unknown period.
func (d *Day) Slots(p Period) *[]*Attraction {
	switch p {
	case Morning:
		return &d.Morning
	case Afternoon:
		return &d.Afternoon
	case Evening:
		return &d.Evening
	}
	return nil
}

// Schedule is the itinerary of one trip. At least one day always exists.
type Schedule struct {
	Days []Day `json:"days"`
}

// DayIDs returns the ids of all days in order.
func (s Schedule) DayIDs() []int {
	ids := make([]int, len(s.Days))
	for i, d := range s.Days {
		ids[i] = d.ID
	}
	return ids
}
