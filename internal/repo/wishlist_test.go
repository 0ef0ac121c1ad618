package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
	"github.com/pkordes/tripweaver/testutil"
)

func savedFixture(folder, id string) domain.SavedAttraction {
	return domain.SavedAttraction{
		UserID:       userA,
		FolderName:   folder,
		AttractionID: id,
		Attraction: domain.Attraction{
			ID:          id,
			Name:        "Griffith Observatory",
			Category:    "Science",
			Location:    "Los Angeles, CA",
			Coordinates: domain.Coordinates{Lat: 34.1184, Lng: -118.3004},
			Rating:      5,
			Price:       domain.PriceFree,
			Features:    []string{"Scenic views", "Educational"},
		},
	}
}

func TestWishlistRepo_Save(t *testing.T) {
	r := repo.NewWishlistRepo(testutil.NewTx(t))

	got, err := r.Save(context.Background(), savedFixture("LA", "griffith-observatory"))

	require.NoError(t, err)
	assert.Equal(t, "user-a_LA_griffith-observatory", got.ID)
	assert.Equal(t, "Griffith Observatory", got.Attraction.Name)
	assert.Equal(t, []string{"Scenic views", "Educational"}, got.Attraction.Features)
	assert.InDelta(t, 34.1184, got.Attraction.Coordinates.Lat, 1e-9)
	assert.False(t, got.SavedAt.IsZero())
}

func TestWishlistRepo_Save_IsUpsert(t *testing.T) {
	r := repo.NewWishlistRepo(testutil.NewTx(t))
	ctx := context.Background()

	_, err := r.Save(ctx, savedFixture("LA", "x"))
	require.NoError(t, err)

	again := savedFixture("LA", "x")
	again.Attraction.Name = "Renamed"
	_, err = r.Save(ctx, again)
	require.NoError(t, err)

	recs, err := r.ListByFolder(ctx, userA, "LA")
	require.NoError(t, err)
	require.Len(t, recs, 1, "saving the same key twice must not duplicate")
	assert.Equal(t, "Renamed", recs[0].Attraction.Name)
}

func TestWishlistRepo_ListByUser(t *testing.T) {
	r := repo.NewWishlistRepo(testutil.NewTx(t))
	ctx := context.Background()

	for _, rec := range []domain.SavedAttraction{
		savedFixture("LA", "a"),
		savedFixture("LA", "b"),
		savedFixture("NYC", "c"),
	} {
		_, err := r.Save(ctx, rec)
		require.NoError(t, err)
	}
	other := savedFixture("LA", "z")
	other.UserID = "user-b"
	_, err := r.Save(ctx, other)
	require.NoError(t, err)

	recs, err := r.ListByUser(ctx, userA)

	require.NoError(t, err)
	assert.Len(t, recs, 3)
	for _, rec := range recs {
		assert.Equal(t, userA, rec.UserID)
	}
}

func TestWishlistRepo_Remove(t *testing.T) {
	r := repo.NewWishlistRepo(testutil.NewTx(t))
	ctx := context.Background()

	_, err := r.Save(ctx, savedFixture("LA", "a"))
	require.NoError(t, err)

	require.NoError(t, r.Remove(ctx, userA, "LA", "a"))
	assert.ErrorIs(t, r.Remove(ctx, userA, "LA", "a"), domain.ErrNotFound)
}

func TestWishlistRepo_Exists(t *testing.T) {
	r := repo.NewWishlistRepo(testutil.NewTx(t))
	ctx := context.Background()

	_, err := r.Save(ctx, savedFixture("NYC", "a"))
	require.NoError(t, err)

	ok, err := r.Exists(ctx, userA, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Exists(ctx, userA, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Exists(ctx, "user-b", "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWishlistRepo_UpsertFolder_Idempotent(t *testing.T) {
	r := repo.NewWishlistRepo(testutil.NewTx(t))
	ctx := context.Background()

	first, err := r.UpsertFolder(ctx, userA, "Paris Trip")
	require.NoError(t, err)
	assert.Equal(t, "user-a_folder_Paris Trip", first.ID)

	_, err = r.UpsertFolder(ctx, userA, "Paris Trip")
	require.NoError(t, err)

	folders, err := r.ListFolders(ctx, userA)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Paris Trip", folders[0].FolderName)
}

func TestWishlistRepo_DeleteFolder(t *testing.T) {
	r := repo.NewWishlistRepo(testutil.NewTx(t))
	ctx := context.Background()

	_, err := r.UpsertFolder(ctx, userA, "LA")
	require.NoError(t, err)
	_, err = r.UpsertFolder(ctx, userA, "NYC")
	require.NoError(t, err)
	for _, rec := range []domain.SavedAttraction{
		savedFixture("LA", "a"),
		savedFixture("LA", "b"),
		savedFixture("NYC", "c"),
	} {
		_, err := r.Save(ctx, rec)
		require.NoError(t, err)
	}

	removed, err := r.DeleteFolder(ctx, userA, "LA")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	recs, err := r.ListByUser(ctx, userA)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "NYC", recs[0].FolderName)

	folders, err := r.ListFolders(ctx, userA)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "NYC", folders[0].FolderName)

	// Deleting again is harmless.
	removed, err = r.DeleteFolder(ctx, userA, "LA")
	require.NoError(t, err)
	assert.Zero(t, removed)
}
