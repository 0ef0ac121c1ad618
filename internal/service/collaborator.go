package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CollaboratorService manages who a trip is shared with. Only the user who
// owns the trip may list or change its collaborators.
type CollaboratorService struct {
	trips         repo.TripRepo
	collaborators repo.CollaboratorRepo
}

// NewCollaboratorService constructs a CollaboratorService.
func NewCollaboratorService(trips repo.TripRepo, collaborators repo.CollaboratorRepo) *CollaboratorService {
	return &CollaboratorService{trips: trips, collaborators: collaborators}
}

// List returns the trip's collaborators, owner first.
func (s *CollaboratorService) List(ctx context.Context, userID string, tripID uuid.UUID) ([]domain.Collaborator, error) {
	if err := s.authorize(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.CollaboratorService.List: %w", err)
	}
	out, err := s.collaborators.List(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CollaboratorService.List: %w", err)
	}
	if out == nil {
		out = []domain.Collaborator{}
	}
	return out, nil
}

// Invite shares the trip with email as an editor or viewer.
// Returns domain.ErrValidation for a malformed email, a role other than
// editor or viewer, or an email that already has access.
func (s *CollaboratorService) Invite(ctx context.Context, userID string, tripID uuid.UUID, email string, role domain.Role) (domain.Collaborator, error) {
	email = strings.TrimSpace(email)
	if err := validateInvite(email, role); err != nil {
		return domain.Collaborator{}, err
	}
	if err := s.authorize(ctx, userID, tripID); err != nil {
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.Invite: %w", err)
	}

	c, err := s.collaborators.Add(ctx, domain.Collaborator{TripID: tripID, Email: email, Role: role})
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.Invite: %w", err)
	}
	return c, nil
}

// UpdateRole switches a collaborator between editor and viewer.
// The owner's role cannot be changed.
func (s *CollaboratorService) UpdateRole(ctx context.Context, userID string, tripID uuid.UUID, email string, role domain.Role) (domain.Collaborator, error) {
	if role != domain.RoleEditor && role != domain.RoleViewer {
		return domain.Collaborator{}, fmt.Errorf("%w: role must be editor or viewer", domain.ErrValidation)
	}
	if err := s.requireNonOwner(ctx, userID, tripID, email); err != nil {
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.UpdateRole: %w", err)
	}

	c, err := s.collaborators.UpdateRole(ctx, tripID, email, role)
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("service.CollaboratorService.UpdateRole: %w", err)
	}
	return c, nil
}

// Remove revokes a collaborator's access. The owner cannot be removed.
func (s *CollaboratorService) Remove(ctx context.Context, userID string, tripID uuid.UUID, email string) error {
	if err := s.requireNonOwner(ctx, userID, tripID, email); err != nil {
		return fmt.Errorf("service.CollaboratorService.Remove: %w", err)
	}
	if err := s.collaborators.Remove(ctx, tripID, email); err != nil {
		return fmt.Errorf("service.CollaboratorService.Remove: %w", err)
	}
	return nil
}

// authorize checks that userID owns the trip.
func (s *CollaboratorService) authorize(ctx context.Context, userID string, tripID uuid.UUID) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	_, err := s.trips.GetByID(ctx, userID, tripID)
	return err
}

// requireNonOwner looks email up among the trip's collaborators and rejects
// the owner. Returns domain.ErrNotFound if the email has no access.
func (s *CollaboratorService) requireNonOwner(ctx context.Context, userID string, tripID uuid.UUID, email string) error {
	if err := s.authorize(ctx, userID, tripID); err != nil {
		return err
	}
	all, err := s.collaborators.List(ctx, tripID)
	if err != nil {
		return err
	}
	for _, c := range all {
		if strings.EqualFold(c.Email, strings.TrimSpace(email)) {
			if c.Role == domain.RoleOwner {
				return fmt.Errorf("%w: the trip owner cannot be changed", domain.ErrValidation)
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// validateInvite enforces the invite form rules.
//   - Email must look like local@domain.tld.
//   - Role must be editor or viewer; owner is implicit.
func validateInvite(email string, role domain.Role) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: please enter a valid email address", domain.ErrValidation)
	}
	if role != domain.RoleEditor && role != domain.RoleViewer {
		return fmt.Errorf("%w: role must be editor or viewer", domain.ErrValidation)
	}
	return nil
}
