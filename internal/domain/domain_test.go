package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
)

func ptr(i int) *int { return &i }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit *int
		want        domain.PaginationParams
		wantOffset  int
	}{
		{name: "defaults", want: domain.PaginationParams{Page: 1, Limit: 20}, wantOffset: 0},
		{name: "explicit", page: ptr(3), limit: ptr(10), want: domain.PaginationParams{Page: 3, Limit: 10}, wantOffset: 20},
		{name: "non-positive falls back", page: ptr(0), limit: ptr(-5), want: domain.PaginationParams{Page: 1, Limit: 20}},
		{name: "limit capped", page: ptr(2), limit: ptr(1000), want: domain.PaginationParams{Page: 2, Limit: domain.MaxPageLimit}, wantOffset: domain.MaxPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NewPaginationParams(tt.page, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]domain.Period{
		"morning":   domain.Morning,
		" Evening ": domain.Evening,
		"AFTERNOON": domain.Afternoon,
	} {
		got, err := domain.ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := domain.ParsePeriod("night")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPriceValid(t *testing.T) {
	assert.True(t, domain.Price("").Valid())
	assert.True(t, domain.PriceFree.Valid())
	assert.True(t, domain.PricePaid.Valid())
	assert.False(t, domain.Price("free").Valid())
}

func TestAttractionClone_CopiesFeatures(t *testing.T) {
	a := domain.Attraction{ID: "x", Features: []string{"Views"}}
	b := a.Clone()
	b.Features[0] = "changed"

	assert.Equal(t, "Views", a.Features[0])
}

func TestDocumentKeys(t *testing.T) {
	assert.Equal(t, "u1_Museums_griffith", domain.SavedAttractionKey("u1", "Museums", "griffith"))
	assert.Equal(t, "u1_folder_Museums", domain.FolderKey("u1", "Museums"))
}
