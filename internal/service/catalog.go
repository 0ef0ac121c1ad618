package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/tripweaver/internal/catalog"
	"github.com/pkordes/tripweaver/internal/domain"
)

// LiveCatalog is the subset of the OpenTripMap client used for live search.
type LiveCatalog interface {
	ByCity(ctx context.Context, city string, radius, limit int) ([]domain.Attraction, error)
	ByCoordinates(ctx context.Context, lat, lng float64, radius, limit int) ([]domain.Attraction, error)
}

// CatalogQuery selects attractions. Without City or coordinates the built-in
// catalog is searched; otherwise the live catalog is.
type CatalogQuery struct {
	Filter catalog.Filter
	City   string
	Lat    *float64
	Lng    *float64
	Radius int
	Limit  int
}

// CatalogService answers attraction searches and lookups.
type CatalogService struct {
	static *catalog.Static
	live   LiveCatalog
}

// NewCatalogService constructs a CatalogService. live may be nil, in which
// case only the built-in catalog is searchable.
func NewCatalogService(static *catalog.Static, live LiveCatalog) *CatalogService {
	return &CatalogService{static: static, live: live}
}

// Search returns the attractions matching q.
func (s *CatalogService) Search(ctx context.Context, q CatalogQuery) ([]domain.Attraction, error) {
	if (q.Lat == nil) != (q.Lng == nil) {
		return nil, fmt.Errorf("%w: lat and lng must be given together", domain.ErrValidation)
	}
	if q.Limit < 0 || q.Radius < 0 {
		return nil, fmt.Errorf("%w: limit and radius must not be negative", domain.ErrValidation)
	}
	if q.Filter.MinRating < 0 || q.Filter.MinRating > 5 {
		return nil, fmt.Errorf("%w: min_rating must be between 0 and 5", domain.ErrValidation)
	}
	if !q.Filter.Price.Valid() {
		return nil, fmt.Errorf("%w: price must be Free or Paid", domain.ErrValidation)
	}

	city := strings.TrimSpace(q.City)
	if city == "" && q.Lat == nil {
		return truncate(s.static.List(q.Filter), q.Limit), nil
	}
	if s.live == nil {
		return nil, fmt.Errorf("%w: live search is not configured", domain.ErrValidation)
	}

	var (
		found []domain.Attraction
		err   error
	)
	if city != "" {
		found, err = s.live.ByCity(ctx, city, q.Radius, q.Limit)
	} else {
		found, err = s.live.ByCoordinates(ctx, *q.Lat, *q.Lng, q.Radius, q.Limit)
	}
	if err != nil {
		slog.WarnContext(ctx, "live catalog search failed", "city", city, "error", err)
		return nil, fmt.Errorf("service.CatalogService.Search: %w", err)
	}
	return q.Filter.Apply(found), nil
}

// Get returns a built-in attraction by id.
func (s *CatalogService) Get(_ context.Context, id string) (domain.Attraction, error) {
	a, err := s.static.Get(id)
	if err != nil {
		return domain.Attraction{}, fmt.Errorf("service.CatalogService.Get: %w", err)
	}
	return a, nil
}

// Categories lists the categories of the built-in catalog.
func (s *CatalogService) Categories() []string {
	return s.static.Categories()
}

func truncate(as []domain.Attraction, limit int) []domain.Attraction {
	if limit > 0 && len(as) > limit {
		return as[:limit]
	}
	return as
}
