// Package planner holds the itinerary grid model and the two-phase
// pick-up/drop controller that feeds it. Everything here is pure state
// manipulation on a domain.Schedule; persistence and locking belong to the
// caller.
package planner

import "github.com/pkordes/tripweaver/internal/domain"

// NewSchedule returns a schedule with days 1..n, each period holding one
// empty slot. n below 1 is treated as 1.
func NewSchedule(n int) domain.Schedule {
	var s domain.Schedule
	for range max(n, 1) {
		AddDay(&s)
	}
	return s
}

// AddDay appends a day whose id is one past the largest existing id (1 for
// an empty schedule). Ids of deleted days are never reused while a larger id
// exists.
func AddDay(s *domain.Schedule) domain.Day {
	next := 1
	for _, d := range s.Days {
		if d.ID >= next {
			next = d.ID + 1
		}
	}
	day := domain.Day{
		ID:        next,
		Morning:   []*domain.Attraction{nil},
		Afternoon: []*domain.Attraction{nil},
		Evening:   []*domain.Attraction{nil},
	}
	s.Days = append(s.Days, day)
	return day
}

// RemoveDay deletes the day with the given id. It refuses to remove the only
// remaining day and reports whether anything changed.
func RemoveDay(s *domain.Schedule, dayID int) bool {
	if len(s.Days) <= 1 {
		return false
	}
	for i, d := range s.Days {
		if d.ID == dayID {
			s.Days = append(s.Days[:i], s.Days[i+1:]...)
			return true
		}
	}
	return false
}

// AddSlot appends one empty slot to the given day and period.
func AddSlot(s *domain.Schedule, dayID int, p domain.Period) bool {
	slots := bucket(s, dayID, p)
	if slots == nil {
		return false
	}
	*slots = append(*slots, nil)
	return true
}

// RemoveSlot deletes the slot at index, shifting later slots down by one.
// Indices are therefore unstable: callers must re-read the schedule before
// issuing another removal in the same period.
func RemoveSlot(s *domain.Schedule, dayID int, p domain.Period, index int) bool {
	slots := bucket(s, dayID, p)
	if slots == nil || index < 0 || index >= len(*slots) {
		return false
	}
	*slots = append((*slots)[:index], (*slots)[index+1:]...)
	return true
}

// Place puts a copy of a into the addressed slot, overwriting any previous
// occupant. Out-of-range indices and unknown days leave the schedule as is.
func Place(s *domain.Schedule, t domain.SlotTarget, a domain.Attraction) bool {
	slots := bucket(s, t.DayID, t.Period)
	if slots == nil || t.Index < 0 || t.Index >= len(*slots) {
		return false
	}
	c := a.Clone()
	(*slots)[t.Index] = &c
	return true
}

// SlotAt returns the occupant of the addressed slot. ok is false when the
// slot does not exist; a nil attraction with ok true is an empty slot.
func SlotAt(s domain.Schedule, t domain.SlotTarget) (a *domain.Attraction, ok bool) {
	slots := bucket(&s, t.DayID, t.Period)
	if slots == nil || t.Index < 0 || t.Index >= len(*slots) {
		return nil, false
	}
	return (*slots)[t.Index], true
}

// Normalize repairs a schedule read from storage: it guarantees at least one
// day and non-nil buckets so JSON renders [] rather than null.
func Normalize(s *domain.Schedule) {
	if len(s.Days) == 0 {
		AddDay(s)
	}
	for i := range s.Days {
		for _, p := range domain.Periods {
			if b := s.Days[i].Slots(p); *b == nil {
				*b = []*domain.Attraction{}
			}
		}
	}
}

func bucket(s *domain.Schedule, dayID int, p domain.Period) *[]*domain.Attraction {
	for i := range s.Days {
		if s.Days[i].ID == dayID {
			return s.Days[i].Slots(p)
		}
	}
	return nil
}
