package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/service"
)

var baseTime = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func rec(folder, id string, minutes int) domain.SavedAttraction {
	return domain.SavedAttraction{
		UserID:       "u1",
		FolderName:   folder,
		AttractionID: id,
		Attraction:   domain.Attraction{ID: id, Name: "Attraction " + id, Features: []string{"Scenic views"}},
		LastModified: baseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

func attractionIDs(f domain.Folder) []string {
	ids := make([]string, len(f.Attractions))
	for i, a := range f.Attractions {
		ids[i] = a.ID
	}
	return ids
}

func TestAggregateFolders_Empty(t *testing.T) {
	got := service.AggregateFolders(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateFolders_GroupsInFirstSeenOrder(t *testing.T) {
	got := service.AggregateFolders([]domain.SavedAttraction{
		rec("NYC", "a", 0),
		rec("LA", "b", 1),
		rec("NYC", "c", 2),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "NYC", got[0].Name)
	assert.Equal(t, []string{"a", "c"}, attractionIDs(got[0]))
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "LA", got[1].Name)
	assert.Equal(t, 1, got[1].Count)
}

func TestAggregateFolders_LastModifiedIsLatest(t *testing.T) {
	got := service.AggregateFolders([]domain.SavedAttraction{
		rec("LA", "a", 30),
		rec("LA", "b", 5),
	})

	require.Len(t, got, 1)
	assert.Equal(t, baseTime.Add(30*time.Minute), got[0].LastModified)
}

func TestAggregateFolders_DuplicateKeyLastWriteWins(t *testing.T) {
	first := rec("LA", "x", 0)
	other := rec("LA", "y", 1)
	second := rec("LA", "x", 2)
	second.Attraction.Name = "Updated"

	got := service.AggregateFolders([]domain.SavedAttraction{first, other, second})

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Count, "saving the same attraction twice must not grow the folder")
	assert.Equal(t, []string{"x", "y"}, attractionIDs(got[0]))
	assert.Equal(t, "Updated", got[0].Attractions[0].Name)
}

func TestAggregateFolders_SameAttractionInTwoFolders(t *testing.T) {
	got := service.AggregateFolders([]domain.SavedAttraction{
		rec("LA", "x", 0),
		rec("Favorites", "x", 1),
	})

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 1, got[1].Count)
}

func TestAggregateFolders_Idempotent(t *testing.T) {
	input := []domain.SavedAttraction{
		rec("NYC", "a", 0),
		rec("LA", "b", 1),
		rec("NYC", "a", 2),
		rec("LA", "c", 3),
	}

	first := service.AggregateFolders(input)
	second := service.AggregateFolders(input)

	assert.Equal(t, first, second)
}

func TestAggregateFolders_ReturnsCopies(t *testing.T) {
	input := []domain.SavedAttraction{rec("LA", "a", 0)}

	got := service.AggregateFolders(input)
	input[0].Attraction.Features[0] = "mutated"

	assert.Equal(t, "Scenic views", got[0].Attractions[0].Features[0])
}

func TestAggregateFolders_UnderscoresDoNotCollide(t *testing.T) {
	// "a_b"+"c" and "a"+"b_c" join to the same document key.
	got := service.AggregateFolders([]domain.SavedAttraction{
		rec("a", "1", 0),
		rec("a_b", "c", 1),
		rec("a", "b_c", 2),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, []string{"1", "b_c"}, attractionIDs(got[0]))
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "a_b", got[1].Name)
	assert.Equal(t, []string{"c"}, attractionIDs(got[1]))
}

func TestAggregateFolders_UnderscoresFirstFolderShorter(t *testing.T) {
	got := service.AggregateFolders([]domain.SavedAttraction{
		rec("a_b", "c", 0),
		rec("a", "b_c", 1),
	})

	require.Len(t, got, 2)
	assert.Equal(t, []string{"c"}, attractionIDs(got[0]))
	assert.Equal(t, []string{"b_c"}, attractionIDs(got[1]))
}
