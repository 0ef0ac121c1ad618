package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/middleware"
)

// TripResponse is the JSON shape of a trip and its itinerary grid.
type TripResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Destination string          `json:"destination,omitempty"`
	Schedule    domain.Schedule `json:"schedule"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TripList is one page of trips.
type TripList struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateTripRequest is the body of POST /trips. Days defaults to 1.
type CreateTripRequest struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Days        *int   `json:"days"`
}

// AddDayResponse returns the new day alongside the updated trip.
type AddDayResponse struct {
	Day  domain.Day   `json:"day"`
	Trip TripResponse `json:"trip"`
}

// PlaceRequest is the body of PUT .../slots/{index}.
type PlaceRequest struct {
	Attraction *domain.Attraction `json:"attraction"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}

	u, _ := middleware.UserFrom(r.Context())
	created, err := s.trips.Create(r.Context(), u.ID, u.Email,
		domain.Trip{Name: body.Name, Destination: body.Destination}, deref(body.Days))
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips, newest first.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=50).
// The total is repeated in the X-Total-Count header.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := queryParam(r, "page", &page); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		requestError(w, err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.List(r.Context(), userID(r), params)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID(r), id); err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddDay handles POST /trips/{tripID}/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	trip, day, err := s.trips.AddDay(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, AddDayResponse{Day: day, Trip: tripToResponse(trip)})
}

// RemoveDay handles DELETE /trips/{tripID}/days/{dayID}.
// Unknown days and the last remaining day are left in place.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var dayID int
	if err := pathParam(r, "dayID", &dayID); err != nil {
		requestError(w, err.Error())
		return
	}

	trip, err := s.trips.RemoveDay(r.Context(), userID(r), id, dayID)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// AddSlot handles POST /trips/{tripID}/days/{dayID}/{period}/slots.
func (s *Server) AddSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var (
		dayID  int
		period string
	)
	if err := pathParam(r, "dayID", &dayID); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := pathParam(r, "period", &period); err != nil {
		requestError(w, err.Error())
		return
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	trip, err := s.trips.AddSlot(r.Context(), userID(r), id, dayID, p)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// PlaceAttraction handles PUT /trips/{tripID}/days/{dayID}/{period}/slots/{index}.
// The slot's previous occupant, if any, is replaced.
func (s *Server) PlaceAttraction(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	target, ok := slotTargetParam(w, r)
	if !ok {
		return
	}
	var body PlaceRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	if body.Attraction == nil {
		requestError(w, "attraction is required")
		return
	}

	trip, err := s.trips.Place(r.Context(), userID(r), id, target, *body.Attraction)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// RemoveSlot handles DELETE /trips/{tripID}/days/{dayID}/{period}/slots/{index}.
func (s *Server) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	target, ok := slotTargetParam(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.RemoveSlot(r.Context(), userID(r), id, target)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// --- mapping helpers --------------------------------------------------------

// tripIDParam binds {tripID}, writing a 422 and returning false when it is
// not a UUID.
func tripIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id uuid.UUID
	if err := pathParam(r, "tripID", &id); err != nil {
		requestError(w, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// slotTargetParam binds {dayID}, {period} and {index}.
func slotTargetParam(w http.ResponseWriter, r *http.Request) (domain.SlotTarget, bool) {
	var (
		t      domain.SlotTarget
		period string
	)
	if err := pathParam(r, "dayID", &t.DayID); err != nil {
		requestError(w, err.Error())
		return t, false
	}
	if err := pathParam(r, "period", &period); err != nil {
		requestError(w, err.Error())
		return t, false
	}
	if err := pathParam(r, "index", &t.Index); err != nil {
		requestError(w, err.Error())
		return t, false
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		respondError(w, r, err, "")
		return t, false
	}
	t.Period = p
	return t, true
}

// tripToResponse converts a domain.Trip into its JSON shape.
func tripToResponse(t domain.Trip) TripResponse {
	sch := t.Schedule
	if sch.Days == nil {
		sch.Days = []domain.Day{}
	}
	return TripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Destination: t.Destination,
		Schedule:    sch,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
