package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/service"
)

// sharedTrip returns a trip repo holding one trip and a collaborator repo
// that already lists its owner and one editor.
func sharedTrip() (*mockTripRepo, *mockCollaboratorRepo, uuid.UUID) {
	trips, trip := storedTrip(1)
	existing := []domain.Collaborator{
		{TripID: trip.ID, Email: "arielx@tripweaver.com", Role: domain.RoleOwner},
		{TripID: trip.ID, Email: "bh62@tripweaver.com", Role: domain.RoleEditor},
	}
	collabs := &mockCollaboratorRepo{
		list: func(context.Context, uuid.UUID) ([]domain.Collaborator, error) { return existing, nil },
		add: func(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) {
			return c, nil
		},
		updateRole: func(_ context.Context, tripID uuid.UUID, email string, role domain.Role) (domain.Collaborator, error) {
			return domain.Collaborator{TripID: tripID, Email: email, Role: role}, nil
		},
		remove: func(context.Context, uuid.UUID, string) error { return nil },
	}
	return trips, collabs, trip.ID
}

func TestCollaboratorService_List(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	got, err := svc.List(context.Background(), "u1", tripID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.RoleOwner, got[0].Role)
}

func TestCollaboratorService_List_OtherUsersTrip(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	_, err := svc.List(context.Background(), "intruder", tripID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollaboratorService_Invite(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	got, err := svc.Invite(context.Background(), "u1", tripID, " cynthiaj@tripweaver.com ", domain.RoleViewer)

	require.NoError(t, err)
	assert.Equal(t, "cynthiaj@tripweaver.com", got.Email)
	assert.Equal(t, domain.RoleViewer, got.Role)
}

func TestCollaboratorService_Invite_Validation(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	cases := []struct {
		name  string
		email string
		role  domain.Role
	}{
		{"empty email", "", domain.RoleEditor},
		{"no at sign", "cynthia.tripweaver.com", domain.RoleEditor},
		{"no dot in domain", "cynthia@tripweaver", domain.RoleEditor},
		{"space inside", "cyn thia@tripweaver.com", domain.RoleEditor},
		{"owner role", "new@tripweaver.com", domain.RoleOwner},
		{"unknown role", "new@tripweaver.com", domain.Role("admin")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Invite(context.Background(), "u1", tripID, tc.email, tc.role)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCollaboratorService_UpdateRole(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	got, err := svc.UpdateRole(context.Background(), "u1", tripID, "BH62@tripweaver.com", domain.RoleViewer)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, got.Role)
}

func TestCollaboratorService_UpdateRole_OwnerIsImmutable(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	_, err := svc.UpdateRole(context.Background(), "u1", tripID, "arielx@tripweaver.com", domain.RoleViewer)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCollaboratorService_UpdateRole_Unknown(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	_, err := svc.UpdateRole(context.Background(), "u1", tripID, "ghost@tripweaver.com", domain.RoleViewer)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollaboratorService_Remove(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	var removed string
	collabs.remove = func(_ context.Context, _ uuid.UUID, email string) error {
		removed = email
		return nil
	}
	svc := service.NewCollaboratorService(trips, collabs)

	require.NoError(t, svc.Remove(context.Background(), "u1", tripID, "bh62@tripweaver.com"))
	assert.Equal(t, "bh62@tripweaver.com", removed)

	err := svc.Remove(context.Background(), "u1", tripID, "arielx@tripweaver.com")
	assert.ErrorIs(t, err, domain.ErrValidation, "the owner cannot be removed")
}

func TestCollaboratorService_RequiresUser(t *testing.T) {
	trips, collabs, tripID := sharedTrip()
	svc := service.NewCollaboratorService(trips, collabs)

	_, err := svc.List(context.Background(), "", tripID)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Invite(context.Background(), "", tripID, "new@tripweaver.com", domain.RoleEditor)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
