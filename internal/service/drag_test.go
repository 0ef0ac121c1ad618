package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/cache"
	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/planner"
	"github.com/pkordes/tripweaver/internal/service"
)

func newDragService(days int) (*service.DragService, *domain.Trip, cache.Store) {
	trips, trip := storedTrip(days)
	store := cache.NewMemory()
	return service.NewDragService(trips, store, time.Minute), trip, store
}

func morning(day, index int) domain.SlotTarget {
	return domain.SlotTarget{DayID: day, Period: domain.Morning, Index: index}
}

func TestDragService_PickUpAndStatus(t *testing.T) {
	svc, trip, _ := newDragService(1)
	ctx := context.Background()

	st, err := svc.Status(ctx, "u1", trip.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Idle, st.State)
	assert.False(t, st.DropTarget)

	st, err = svc.PickUp(ctx, "u1", trip.ID, attractionX())
	require.NoError(t, err)
	assert.Equal(t, planner.Dragging, st.State)
	assert.True(t, st.DropTarget)

	st, err = svc.Status(ctx, "u1", trip.ID)
	require.NoError(t, err)
	require.NotNil(t, st.Carried)
	assert.Equal(t, "x", st.Carried.ID)
}

// Dropping A then B on the same slot overwrites rather than appends.
func TestDragService_DropOverwrites(t *testing.T) {
	svc, trip, _ := newDragService(1)
	ctx := context.Background()
	a := domain.Attraction{ID: "A", Name: "Attraction A"}
	b := domain.Attraction{ID: "B", Name: "Attraction B"}

	_, err := svc.PickUp(ctx, "u1", trip.ID, a)
	require.NoError(t, err)
	res, err := svc.Drop(ctx, "u1", trip.ID, morning(1, 0))
	require.NoError(t, err)
	assert.True(t, res.Placed)

	_, err = svc.PickUp(ctx, "u1", trip.ID, b)
	require.NoError(t, err)
	res, err = svc.Drop(ctx, "u1", trip.ID, morning(1, 0))
	require.NoError(t, err)

	slots := res.Trip.Schedule.Days[0].Morning
	require.Len(t, slots, 1)
	require.NotNil(t, slots[0])
	assert.Equal(t, "B", slots[0].ID)
}

func TestDragService_DropEndsDrag(t *testing.T) {
	svc, trip, _ := newDragService(1)
	ctx := context.Background()

	_, err := svc.PickUp(ctx, "u1", trip.ID, attractionX())
	require.NoError(t, err)
	_, err = svc.Drop(ctx, "u1", trip.ID, morning(1, 0))
	require.NoError(t, err)

	st, err := svc.Status(ctx, "u1", trip.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Idle, st.State)
	assert.Nil(t, st.Carried)
}

func TestDragService_DropWhileIdleIsNoOp(t *testing.T) {
	svc, trip, _ := newDragService(1)

	res, err := svc.Drop(context.Background(), "u1", trip.ID, morning(1, 0))

	require.NoError(t, err)
	assert.False(t, res.Placed)
	assert.Nil(t, res.Trip.Schedule.Days[0].Morning[0])
}

func TestDragService_DropOnMissingSlot(t *testing.T) {
	svc, trip, _ := newDragService(1)
	ctx := context.Background()

	_, err := svc.PickUp(ctx, "u1", trip.ID, attractionX())
	require.NoError(t, err)

	res, err := svc.Drop(ctx, "u1", trip.ID, morning(9, 0))
	require.NoError(t, err)
	assert.False(t, res.Placed)

	st, err := svc.Status(ctx, "u1", trip.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Idle, st.State, "a missed drop still ends the drag")
}

func TestDragService_CancelLeavesGridAlone(t *testing.T) {
	svc, trip, _ := newDragService(1)
	ctx := context.Background()

	_, err := svc.PickUp(ctx, "u1", trip.ID, attractionX())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, "u1", trip.ID))

	st, err := svc.Status(ctx, "u1", trip.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Idle, st.State)
	assert.Nil(t, trip.Schedule.Days[0].Morning[0])
}

func TestDragService_CarriedIsSnapshot(t *testing.T) {
	svc, trip, _ := newDragService(1)
	ctx := context.Background()

	a := domain.Attraction{ID: "A", Name: "Before", Features: []string{"one"}}
	_, err := svc.PickUp(ctx, "u1", trip.ID, a)
	require.NoError(t, err)
	a.Name = "After"
	a.Features[0] = "changed"

	res, err := svc.Drop(ctx, "u1", trip.ID, morning(1, 0))
	require.NoError(t, err)
	placed := res.Trip.Schedule.Days[0].Morning[0]
	require.NotNil(t, placed)
	assert.Equal(t, "Before", placed.Name)
	assert.Equal(t, []string{"one"}, placed.Features)
}

func TestDragService_SessionsAreScopedPerTrip(t *testing.T) {
	trips, trip := storedTrip(1)
	otherID := uuid.New()
	getTrip := trips.getByID
	trips.getByID = func(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
		if id == otherID && userID == trip.UserID {
			other := *trip
			other.ID = otherID
			return other, nil
		}
		return getTrip(ctx, userID, id)
	}
	svc := service.NewDragService(trips, cache.NewMemory(), time.Minute)
	ctx := context.Background()

	_, err := svc.PickUp(ctx, "u1", trip.ID, attractionX())
	require.NoError(t, err)

	st, err := svc.Status(ctx, "u1", otherID)
	require.NoError(t, err)
	assert.Equal(t, planner.Idle, st.State)
}

func TestDragService_Status_UnknownTrip(t *testing.T) {
	svc, _, _ := newDragService(1)

	_, err := svc.Status(context.Background(), "u1", uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDragService_Status_OtherUsersTrip(t *testing.T) {
	svc, trip, _ := newDragService(1)

	_, err := svc.Status(context.Background(), "u2", trip.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDragService_PickUp_UnknownTrip(t *testing.T) {
	svc, _, _ := newDragService(1)

	_, err := svc.PickUp(context.Background(), "u1", uuid.New(), attractionX())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDragService_CorruptSessionIsIdle(t *testing.T) {
	svc, trip, store := newDragService(1)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "drag:u1:"+trip.ID.String(), []byte("{not json"), time.Minute))

	st, err := svc.Status(ctx, "u1", trip.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.Idle, st.State)
}

func TestDragService_RequiresUser(t *testing.T) {
	svc, trip, _ := newDragService(1)
	ctx := context.Background()

	_, err := svc.PickUp(ctx, "", trip.ID, attractionX())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Drop(ctx, "", trip.ID, morning(1, 0))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.ErrorIs(t, svc.Cancel(ctx, "", trip.ID), domain.ErrUnauthenticated)
}
