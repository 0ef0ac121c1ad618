// Package service contains the business logic for the TripWeaver API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/planner"
	"github.com/pkordes/tripweaver/internal/repo"
)

// MaxTripDays bounds the number of days a new trip may start with.
const MaxTripDays = 14

// TripService implements saved trips and the itinerary grid operations on
// their schedules. Grid edits run inside repo.UpdateSchedule, so two edits of
// the same trip never interleave.
type TripService struct {
	trips         repo.TripRepo
	collaborators repo.CollaboratorRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, collaborators repo.CollaboratorRepo) *TripService {
	return &TripService{trips: trips, collaborators: collaborators}
}

// Create validates and persists a new trip with days empty days (0 means 1).
// When ownerEmail is known the creator is recorded as the trip's owner
// collaborator.
func (s *TripService) Create(ctx context.Context, userID, ownerEmail string, trip domain.Trip, days int) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, domain.ErrUnauthenticated
	}
	trip.Name = strings.TrimSpace(trip.Name)
	trip.Destination = strings.TrimSpace(trip.Destination)
	if trip.Name == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if days == 0 {
		days = 1
	}
	if days < 1 || days > MaxTripDays {
		return domain.Trip{}, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, MaxTripDays)
	}

	trip.UserID = userID
	trip.Schedule = planner.NewSchedule(days)

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		slog.ErrorContext(ctx, "create trip failed", "user_id", userID, "error", err)
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	if ownerEmail != "" {
		_, err := s.collaborators.Add(ctx, domain.Collaborator{TripID: created.ID, Email: ownerEmail, Role: domain.RoleOwner})
		if err != nil {
			slog.ErrorContext(ctx, "record trip owner failed", "trip_id", created.ID, "error", err)
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: owner: %w", err)
		}
	}
	return created, nil
}

// GetByID returns a single trip owned by userID.
func (s *TripService) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, domain.ErrUnauthenticated
	}
	trip, err := s.trips.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	planner.Normalize(&trip.Schedule)
	return trip, nil
}

// List returns one page of the user's trips, newest first, with the total.
func (s *TripService) List(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	if userID == "" {
		return nil, 0, domain.ErrUnauthenticated
	}
	trips, total, err := s.trips.ListPaged(ctx, userID, p)
	if err != nil {
		slog.ErrorContext(ctx, "list trips failed", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	for i := range trips {
		planner.Normalize(&trips[i].Schedule)
	}
	return trips, total, nil
}

// Delete removes a trip and its collaborators.
func (s *TripService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.trips.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AddDay appends a day and returns the updated trip and the new day.
func (s *TripService) AddDay(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, domain.Day, error) {
	var day domain.Day
	trip, err := s.edit(ctx, userID, id, func(sch *domain.Schedule) error {
		day = planner.AddDay(sch)
		return nil
	})
	if err != nil {
		return domain.Trip{}, domain.Day{}, fmt.Errorf("service.TripService.AddDay: %w", err)
	}
	return trip, day, nil
}

// RemoveDay deletes a day. Removing the last remaining day, or a day that
// does not exist, leaves the schedule unchanged.
func (s *TripService) RemoveDay(ctx context.Context, userID string, id uuid.UUID, dayID int) (domain.Trip, error) {
	trip, err := s.edit(ctx, userID, id, func(sch *domain.Schedule) error {
		planner.RemoveDay(sch, dayID)
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RemoveDay: %w", err)
	}
	return trip, nil
}

// AddSlot appends an empty slot to one period of a day.
func (s *TripService) AddSlot(ctx context.Context, userID string, id uuid.UUID, dayID int, p domain.Period) (domain.Trip, error) {
	trip, err := s.edit(ctx, userID, id, func(sch *domain.Schedule) error {
		planner.AddSlot(sch, dayID, p)
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddSlot: %w", err)
	}
	return trip, nil
}

// RemoveSlot deletes a slot; later slots of the period shift down by one.
func (s *TripService) RemoveSlot(ctx context.Context, userID string, id uuid.UUID, t domain.SlotTarget) (domain.Trip, error) {
	trip, err := s.edit(ctx, userID, id, func(sch *domain.Schedule) error {
		planner.RemoveSlot(sch, t.DayID, t.Period, t.Index)
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.RemoveSlot: %w", err)
	}
	return trip, nil
}

// Place writes a copy of a into the addressed slot, replacing any occupant.
// A slot that does not exist is left alone.
func (s *TripService) Place(ctx context.Context, userID string, id uuid.UUID, t domain.SlotTarget, a domain.Attraction) (domain.Trip, error) {
	if err := validateAttraction(a); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.edit(ctx, userID, id, func(sch *domain.Schedule) error {
		planner.Place(sch, t, a)
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Place: %w", err)
	}
	return trip, nil
}

// edit runs fn against the normalized, locked schedule of a trip.
func (s *TripService) edit(ctx context.Context, userID string, id uuid.UUID, fn func(*domain.Schedule) error) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, domain.ErrUnauthenticated
	}
	trip, err := s.trips.UpdateSchedule(ctx, userID, id, func(sch *domain.Schedule) error {
		planner.Normalize(sch)
		return fn(sch)
	})
	if err != nil {
		return domain.Trip{}, err
	}
	planner.Normalize(&trip.Schedule)
	return trip, nil
}
