package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/catalog"
	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/service"
)

// mockLiveCatalog is a hand-written test double for service.LiveCatalog.
type mockLiveCatalog struct {
	byCity        func(ctx context.Context, city string, radius, limit int) ([]domain.Attraction, error)
	byCoordinates func(ctx context.Context, lat, lng float64, radius, limit int) ([]domain.Attraction, error)
}

func (m *mockLiveCatalog) ByCity(ctx context.Context, city string, radius, limit int) ([]domain.Attraction, error) {
	return m.byCity(ctx, city, radius, limit)
}
func (m *mockLiveCatalog) ByCoordinates(ctx context.Context, lat, lng float64, radius, limit int) ([]domain.Attraction, error) {
	return m.byCoordinates(ctx, lat, lng, radius, limit)
}

var _ service.LiveCatalog = (*mockLiveCatalog)(nil)

func newCatalogService(t *testing.T, live service.LiveCatalog) *service.CatalogService {
	t.Helper()
	static, err := catalog.NewStatic(catalog.Seed)
	require.NoError(t, err)
	return service.NewCatalogService(static, live)
}

func ptr[T any](v T) *T { return &v }

func TestCatalogService_Search_Static(t *testing.T) {
	svc := newCatalogService(t, nil)

	got, err := svc.Search(context.Background(), service.CatalogQuery{
		Filter: catalog.Filter{Category: "Museum"},
	})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCatalogService_Search_StaticLimit(t *testing.T) {
	svc := newCatalogService(t, nil)

	got, err := svc.Search(context.Background(), service.CatalogQuery{Limit: 2})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCatalogService_Search_LiveByCity(t *testing.T) {
	var gotCity string
	svc := newCatalogService(t, &mockLiveCatalog{
		byCity: func(_ context.Context, city string, _, _ int) ([]domain.Attraction, error) {
			gotCity = city
			return []domain.Attraction{
				{ID: "W1", Name: "Louvre", Category: "Museum", Rating: 5},
				{ID: "W2", Name: "Arc", Category: "Monument", Rating: 3},
			}, nil
		},
	})

	got, err := svc.Search(context.Background(), service.CatalogQuery{
		City:   " Paris ",
		Filter: catalog.Filter{MinRating: 4},
	})

	require.NoError(t, err)
	assert.Equal(t, "Paris", gotCity)
	require.Len(t, got, 1, "filters apply to live results too")
	assert.Equal(t, "W1", got[0].ID)
}

func TestCatalogService_Search_LiveByCoordinates(t *testing.T) {
	svc := newCatalogService(t, &mockLiveCatalog{
		byCoordinates: func(_ context.Context, lat, lng float64, radius, _ int) ([]domain.Attraction, error) {
			assert.InDelta(t, 48.85, lat, 1e-9)
			assert.InDelta(t, 2.35, lng, 1e-9)
			assert.Equal(t, 500, radius)
			return []domain.Attraction{{ID: "W1"}}, nil
		},
	})

	got, err := svc.Search(context.Background(), service.CatalogQuery{Lat: ptr(48.85), Lng: ptr(2.35), Radius: 500})

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCatalogService_Search_CityNotFound(t *testing.T) {
	svc := newCatalogService(t, &mockLiveCatalog{
		byCity: func(context.Context, string, int, int) ([]domain.Attraction, error) {
			return nil, domain.ErrNotFound
		},
	})

	_, err := svc.Search(context.Background(), service.CatalogQuery{City: "Atlantis"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_Search_Validation(t *testing.T) {
	svc := newCatalogService(t, nil)

	cases := []struct {
		name string
		q    service.CatalogQuery
	}{
		{"lat without lng", service.CatalogQuery{Lat: ptr(1.0)}},
		{"negative limit", service.CatalogQuery{Limit: -1}},
		{"rating above 5", service.CatalogQuery{Filter: catalog.Filter{MinRating: 6}}},
		{"unknown price", service.CatalogQuery{Filter: catalog.Filter{Price: "Cheap"}}},
		{"live not configured", service.CatalogQuery{City: "Paris"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tc.q)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	svc := newCatalogService(t, nil)

	got, err := svc.Get(context.Background(), "santa-monica-pier")
	require.NoError(t, err)
	assert.Equal(t, "Santa Monica Pier", got.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
