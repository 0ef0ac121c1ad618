package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/cache"
	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/planner"
	"github.com/pkordes/tripweaver/internal/repo"
)

// DragStatus is the observable state of a user's drag on one trip.
type DragStatus struct {
	State   planner.DragState
	Carried *domain.Attraction

	// DropTarget is true while something is carried: grid slots should
	// show a drop affordance.
	DropTarget bool
}

// DragResult reports the outcome of a drop.
type DragResult struct {
	Trip   domain.Trip
	Placed bool
}

// DragService drives the pick-up/drop interaction across requests. The
// carried attraction lives in the session store under (user, trip) and
// expires after ttl; each request rebuilds a planner.DragController from it.
type DragService struct {
	trips    repo.TripRepo
	sessions cache.Store
	ttl      time.Duration
}

// NewDragService constructs a DragService.
func NewDragService(trips repo.TripRepo, sessions cache.Store, ttl time.Duration) *DragService {
	return &DragService{trips: trips, sessions: sessions, ttl: ttl}
}

// PickUp starts carrying a snapshot of a for the trip, replacing anything
// already carried.
func (s *DragService) PickUp(ctx context.Context, userID string, tripID uuid.UUID, a domain.Attraction) (DragStatus, error) {
	if userID == "" {
		return DragStatus{}, domain.ErrUnauthenticated
	}
	if err := validateAttraction(a); err != nil {
		return DragStatus{}, err
	}
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return DragStatus{}, fmt.Errorf("service.DragService.PickUp: %w", err)
	}

	ctl, err := s.load(ctx, userID, tripID)
	if err != nil {
		return DragStatus{}, fmt.Errorf("service.DragService.PickUp: %w", err)
	}
	ctl.PickUp(a)
	if err := s.save(ctx, userID, tripID, ctl); err != nil {
		return DragStatus{}, fmt.Errorf("service.DragService.PickUp: %w", err)
	}
	return statusOf(ctl), nil
}

// Status reports whether anything is being carried for the trip.
func (s *DragService) Status(ctx context.Context, userID string, tripID uuid.UUID) (DragStatus, error) {
	if userID == "" {
		return DragStatus{}, domain.ErrUnauthenticated
	}
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return DragStatus{}, fmt.Errorf("service.DragService.Status: %w", err)
	}
	ctl, err := s.load(ctx, userID, tripID)
	if err != nil {
		return DragStatus{}, fmt.Errorf("service.DragService.Status: %w", err)
	}
	return statusOf(ctl), nil
}

// Drop places the carried attraction into the addressed slot and ends the
// drag. Dropping with nothing carried changes nothing. A target slot that
// does not exist ends the drag without touching the schedule.
func (s *DragService) Drop(ctx context.Context, userID string, tripID uuid.UUID, t domain.SlotTarget) (DragResult, error) {
	if userID == "" {
		return DragResult{}, domain.ErrUnauthenticated
	}
	ctl, err := s.load(ctx, userID, tripID)
	if err != nil {
		return DragResult{}, fmt.Errorf("service.DragService.Drop: %w", err)
	}

	if ctl.State() == planner.Idle {
		trip, err := s.trips.GetByID(ctx, userID, tripID)
		if err != nil {
			return DragResult{}, fmt.Errorf("service.DragService.Drop: %w", err)
		}
		planner.Normalize(&trip.Schedule)
		return DragResult{Trip: trip}, nil
	}

	var placed bool
	trip, err := s.trips.UpdateSchedule(ctx, userID, tripID, func(sch *domain.Schedule) error {
		planner.Normalize(sch)
		placed = ctl.Drop(sch, t)
		return nil
	})
	if err != nil {
		return DragResult{}, fmt.Errorf("service.DragService.Drop: %w", err)
	}
	planner.Normalize(&trip.Schedule)

	if err := s.sessions.Delete(ctx, sessionKey(userID, tripID)); err != nil {
		slog.WarnContext(ctx, "clear drag session failed", "user_id", userID, "trip_id", tripID, "error", err)
	}
	return DragResult{Trip: trip, Placed: placed}, nil
}

// Cancel abandons the drag without touching the schedule.
func (s *DragService) Cancel(ctx context.Context, userID string, tripID uuid.UUID) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.sessions.Delete(ctx, sessionKey(userID, tripID)); err != nil {
		return fmt.Errorf("service.DragService.Cancel: %w", err)
	}
	return nil
}

func (s *DragService) load(ctx context.Context, userID string, tripID uuid.UUID) (*planner.DragController, error) {
	b, err := s.sessions.Get(ctx, sessionKey(userID, tripID))
	if errors.Is(err, cache.ErrMiss) {
		return planner.Resume(nil), nil
	}
	if err != nil {
		return nil, err
	}
	var carried domain.Attraction
	if err := json.Unmarshal(b, &carried); err != nil {
		// A corrupt session is treated as no drag at all.
		slog.WarnContext(ctx, "discarding unreadable drag session", "user_id", userID, "trip_id", tripID, "error", err)
		return planner.Resume(nil), nil
	}
	return planner.Resume(&carried), nil
}

func (s *DragService) save(ctx context.Context, userID string, tripID uuid.UUID, ctl *planner.DragController) error {
	carried, ok := ctl.Carried()
	if !ok {
		return s.sessions.Delete(ctx, sessionKey(userID, tripID))
	}
	b, err := json.Marshal(carried)
	if err != nil {
		return err
	}
	return s.sessions.Set(ctx, sessionKey(userID, tripID), b, s.ttl)
}

func statusOf(ctl *planner.DragController) DragStatus {
	st := DragStatus{State: ctl.State(), DropTarget: ctl.Hover()}
	if a, ok := ctl.Carried(); ok {
		st.Carried = &a
	}
	return st
}

func sessionKey(userID string, tripID uuid.UUID) string {
	return "drag:" + userID + ":" + tripID.String()
}
