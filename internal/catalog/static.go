// Package catalog is the read-only source of browsable attractions: a small
// seeded catalog that is always available, and a live client for the
// OpenTripMap places API.
package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkordes/tripweaver/internal/domain"
)

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	Query     string // case-insensitive substring of name, description or location
	Category  string // exact category, case-insensitive
	Price     domain.Price
	MinRating int
}

// Match reports whether a passes every set criterion.
func (f Filter) Match(a domain.Attraction) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(a.Name + "\n" + a.Description + "\n" + a.Location)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(f.Category, a.Category) {
		return false
	}
	if f.Price != "" && f.Price != a.Price {
		return false
	}
	return a.Rating >= f.MinRating
}

// Apply returns copies of the attractions that match f, in input order.
func (f Filter) Apply(in []domain.Attraction) []domain.Attraction {
	out := []domain.Attraction{}
	for _, a := range in {
		if f.Match(a) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Static is an immutable in-memory catalog.
type Static struct {
	items []domain.Attraction
	byID  map[string]int
}

// NewStatic builds a catalog from items. Ids must be unique.
func NewStatic(items []domain.Attraction) (*Static, error) {
	s := &Static{byID: make(map[string]int, len(items))}
	for _, a := range items {
		if _, dup := s.byID[a.ID]; dup {
			return nil, fmt.Errorf("catalog.NewStatic: duplicate id %q", a.ID)
		}
		s.byID[a.ID] = len(s.items)
		s.items = append(s.items, a.Clone())
	}
	return s, nil
}

// List returns the attractions matching f.
func (s *Static) List(f Filter) []domain.Attraction {
	return f.Apply(s.items)
}

// Get returns the attraction with the given id, or domain.ErrNotFound.
func (s *Static) Get(id string) (domain.Attraction, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Attraction{}, fmt.Errorf("catalog.Static.Get: %w", domain.ErrNotFound)
	}
	return s.items[i].Clone(), nil
}

// Categories returns the distinct categories in first-seen order.
func (s *Static) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range s.items {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}

// MapsLink returns a Google Maps search URL pointing at a.
func MapsLink(a domain.Attraction) string {
	name := strings.ReplaceAll(url.QueryEscape(a.Name), "+", "%20")
	return "https://www.google.com/maps/search/?api=1&query=" + name + "%20" +
		strconv.FormatFloat(a.Coordinates.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(a.Coordinates.Lng, 'f', -1, 64)
}
