package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/tripweaver/internal/domain"
)

// CollaboratorResponse is one person with access to a trip.
type CollaboratorResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteRequest is the body of POST /trips/{tripID}/collaborators.
type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateRoleRequest is the body of PUT /trips/{tripID}/collaborators/{email}.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ListCollaborators handles GET /trips/{tripID}/collaborators. The owner
// comes first.
func (s *Server) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	cs, err := s.collaborators.List(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	out := make([]CollaboratorResponse, len(cs))
	for i, c := range cs {
		out[i] = collaboratorToResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// InviteCollaborator handles POST /trips/{tripID}/collaborators.
func (s *Server) InviteCollaborator(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var body InviteRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}

	c, err := s.collaborators.Invite(r.Context(), userID(r), id, body.Email, domain.Role(body.Role))
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, collaboratorToResponse(c))
}

// UpdateCollaborator handles PUT /trips/{tripID}/collaborators/{email}.
func (s *Server) UpdateCollaborator(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var email string
	if err := pathParam(r, "email", &email); err != nil {
		requestError(w, err.Error())
		return
	}
	var body UpdateRoleRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}

	c, err := s.collaborators.UpdateRole(r.Context(), userID(r), id, email, domain.Role(body.Role))
	if err != nil {
		respondError(w, r, err, "collaborator not found")
		return
	}
	writeJSON(w, http.StatusOK, collaboratorToResponse(c))
}

// RemoveCollaborator handles DELETE /trips/{tripID}/collaborators/{email}.
func (s *Server) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var email string
	if err := pathParam(r, "email", &email); err != nil {
		requestError(w, err.Error())
		return
	}

	if err := s.collaborators.Remove(r.Context(), userID(r), id, email); err != nil {
		respondError(w, r, err, "collaborator not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func collaboratorToResponse(c domain.Collaborator) CollaboratorResponse {
	return CollaboratorResponse{Email: c.Email, Role: string(c.Role), CreatedAt: c.CreatedAt}
}
