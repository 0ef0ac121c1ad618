package handler

import (
	"net/http"

	"github.com/pkordes/tripweaver/internal/catalog"
	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/service"
)

// AttractionResponse is a catalog attraction plus its map link.
type AttractionResponse struct {
	domain.Attraction
	MapsLink string `json:"maps_link"`
}

// ListAttractions handles GET /attractions.
// Without ?city= or ?lat=&lng= it searches the built-in catalog; otherwise
// the live places API. Filters apply to both.
func (s *Server) ListAttractions(w http.ResponseWriter, r *http.Request) {
	var (
		q, category, price, city *string
		minRating, radius, limit *int
		lat, lng                 *float64
	)
	for name, dest := range map[string]any{
		"q": &q, "category": &category, "price": &price, "city": &city,
		"min_rating": &minRating, "radius": &radius, "limit": &limit,
		"lat": &lat, "lng": &lng,
	} {
		if err := queryParam(r, name, dest); err != nil {
			requestError(w, err.Error())
			return
		}
	}

	query := service.CatalogQuery{
		Filter: catalog.Filter{
			Query:     deref(q),
			Category:  deref(category),
			Price:     domain.Price(deref(price)),
			MinRating: deref(minRating),
		},
		City:   deref(city),
		Lat:    lat,
		Lng:    lng,
		Radius: deref(radius),
		Limit:  deref(limit),
	}

	found, err := s.catalog.Search(r.Context(), query)
	if err != nil {
		respondError(w, r, err, "city not found")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// GetAttraction handles GET /attractions/{attractionID}.
func (s *Server) GetAttraction(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := pathParam(r, "attractionID", &id); err != nil {
		requestError(w, err.Error())
		return
	}

	a, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "attraction not found")
		return
	}
	writeJSON(w, http.StatusOK, AttractionResponse{Attraction: a, MapsLink: catalog.MapsLink(a)})
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Categories())
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
