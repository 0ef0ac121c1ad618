package handler

import (
	"net/http"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/service"
)

// DragStatusResponse reports what the caller is carrying on a trip.
// DropTarget tells the client to highlight grid slots.
type DragStatusResponse struct {
	State      string             `json:"state"`
	Carried    *domain.Attraction `json:"carried"`
	DropTarget bool               `json:"drop_target"`
}

// PickUpRequest is the body of POST /trips/{tripID}/drag.
type PickUpRequest struct {
	Attraction *domain.Attraction `json:"attraction"`
}

// DropRequest is the body of POST /trips/{tripID}/drag/drop.
type DropRequest struct {
	DayID  int    `json:"day_id"`
	Period string `json:"period"`
	Index  int    `json:"index"`
}

// DropResponse reports whether the carried attraction landed in a slot.
type DropResponse struct {
	Placed bool         `json:"placed"`
	Trip   TripResponse `json:"trip"`
}

// PickUp handles POST /trips/{tripID}/drag. Picking up while already
// carrying something replaces it.
func (s *Server) PickUp(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var body PickUpRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	if body.Attraction == nil {
		requestError(w, "attraction is required")
		return
	}

	st, err := s.drag.PickUp(r.Context(), userID(r), id, *body.Attraction)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, dragStatusToResponse(st))
}

// GetDrag handles GET /trips/{tripID}/drag.
func (s *Server) GetDrag(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	st, err := s.drag.Status(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, dragStatusToResponse(st))
}

// Drop handles POST /trips/{tripID}/drag/drop. A drop onto a slot that does
// not exist still ends the drag; placed is false in that case.
func (s *Server) Drop(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var body DropRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	p, err := domain.ParsePeriod(body.Period)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	res, err := s.drag.Drop(r.Context(), userID(r), id,
		domain.SlotTarget{DayID: body.DayID, Period: p, Index: body.Index})
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, DropResponse{Placed: res.Placed, Trip: tripToResponse(res.Trip)})
}

// CancelDrag handles DELETE /trips/{tripID}/drag.
func (s *Server) CancelDrag(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	if err := s.drag.Cancel(r.Context(), userID(r), id); err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func dragStatusToResponse(st service.DragStatus) DragStatusResponse {
	return DragStatusResponse{
		State:      st.State.String(),
		Carried:    st.Carried,
		DropTarget: st.DropTarget,
	}
}
