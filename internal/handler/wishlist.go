package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/tripweaver/internal/domain"
)

// FolderResponse is one aggregated wishlist folder.
type FolderResponse struct {
	Name         string              `json:"name"`
	Attractions  []domain.Attraction `json:"attractions"`
	Count        int                 `json:"count"`
	LastModified *time.Time          `json:"last_modified,omitempty"`
}

// SavedAttractionResponse is a persisted wishlist record.
type SavedAttractionResponse struct {
	ID           string            `json:"id"`
	FolderName   string            `json:"folder_name"`
	AttractionID string            `json:"attraction_id"`
	Attraction   domain.Attraction `json:"attraction"`
	SavedAt      time.Time         `json:"saved_at"`
	LastModified time.Time         `json:"last_modified"`
}

// FolderPlaceholderResponse is returned when a folder is created empty.
type FolderPlaceholderResponse struct {
	ID         string    `json:"id"`
	FolderName string    `json:"folder_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateFolderRequest is the body of POST /folders.
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// SaveAttractionRequest is the body of POST /folders/{folder}/attractions.
type SaveAttractionRequest struct {
	Attraction *domain.Attraction `json:"attraction"`
}

// SavedResponse answers GET /saved/{attractionID}.
type SavedResponse struct {
	Saved bool `json:"saved"`
}

// ListWishlists handles GET /wishlists.
func (s *Server) ListWishlists(w http.ResponseWriter, r *http.Request) {
	folders, err := s.wishlist.ListFolders(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err, "wishlist not found")
		return
	}
	out := make([]FolderResponse, len(folders))
	for i, f := range folders {
		out[i] = folderToResponse(f)
	}
	writeJSON(w, http.StatusOK, out)
}

// ListFolderNames handles GET /folders.
func (s *Server) ListFolderNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.wishlist.FolderNames(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err, "folder not found")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// CreateFolder handles POST /folders.
func (s *Server) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var body CreateFolderRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}

	p, err := s.wishlist.CreateFolder(r.Context(), userID(r), body.Name)
	if err != nil {
		respondError(w, r, err, "folder not found")
		return
	}
	writeJSON(w, http.StatusCreated, FolderPlaceholderResponse{
		ID:         p.ID,
		FolderName: p.FolderName,
		CreatedAt:  p.CreatedAt,
	})
}

// DeleteFolder handles DELETE /folders/{folder}.
// Every record in the folder and its placeholder go in one transaction.
func (s *Server) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	var folder string
	if err := pathParam(r, "folder", &folder); err != nil {
		requestError(w, err.Error())
		return
	}

	if err := s.wishlist.DeleteFolder(r.Context(), userID(r), folder); err != nil {
		respondError(w, r, err, "folder not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFolderAttractions handles GET /folders/{folder}/attractions.
func (s *Server) ListFolderAttractions(w http.ResponseWriter, r *http.Request) {
	var folder string
	if err := pathParam(r, "folder", &folder); err != nil {
		requestError(w, err.Error())
		return
	}

	as, err := s.wishlist.FolderAttractions(r.Context(), userID(r), folder)
	if err != nil {
		respondError(w, r, err, "folder not found")
		return
	}
	if as == nil {
		as = []domain.Attraction{}
	}
	writeJSON(w, http.StatusOK, as)
}

// SaveAttraction handles POST /folders/{folder}/attractions.
// Saving the same attraction into the same folder again overwrites it.
func (s *Server) SaveAttraction(w http.ResponseWriter, r *http.Request) {
	var folder string
	if err := pathParam(r, "folder", &folder); err != nil {
		requestError(w, err.Error())
		return
	}
	var body SaveAttractionRequest
	if err := decodeBody(r, &body); err != nil {
		bodyError(w, err)
		return
	}
	if body.Attraction == nil {
		requestError(w, "attraction is required")
		return
	}

	saved, err := s.wishlist.SaveAttraction(r.Context(), userID(r), folder, *body.Attraction)
	if err != nil {
		respondError(w, r, err, "folder not found")
		return
	}
	writeJSON(w, http.StatusCreated, SavedAttractionResponse{
		ID:           saved.ID,
		FolderName:   saved.FolderName,
		AttractionID: saved.AttractionID,
		Attraction:   saved.Attraction,
		SavedAt:      saved.SavedAt,
		LastModified: saved.LastModified,
	})
}

// RemoveAttraction handles DELETE /folders/{folder}/attractions/{attractionID}.
func (s *Server) RemoveAttraction(w http.ResponseWriter, r *http.Request) {
	var folder, attractionID string
	if err := pathParam(r, "folder", &folder); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := pathParam(r, "attractionID", &attractionID); err != nil {
		requestError(w, err.Error())
		return
	}

	if err := s.wishlist.RemoveAttraction(r.Context(), userID(r), folder, attractionID); err != nil {
		respondError(w, r, err, "saved attraction not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSaved handles GET /saved/{attractionID}. Anonymous callers get false.
func (s *Server) GetSaved(w http.ResponseWriter, r *http.Request) {
	var attractionID string
	if err := pathParam(r, "attractionID", &attractionID); err != nil {
		requestError(w, err.Error())
		return
	}

	saved, err := s.wishlist.IsAttractionSaved(r.Context(), userID(r), attractionID)
	if err != nil {
		respondError(w, r, err, "attraction not found")
		return
	}
	writeJSON(w, http.StatusOK, SavedResponse{Saved: saved})
}

func folderToResponse(f domain.Folder) FolderResponse {
	resp := FolderResponse{
		Name:        f.Name,
		Attractions: f.Attractions,
		Count:       f.Count,
	}
	if resp.Attractions == nil {
		resp.Attractions = []domain.Attraction{}
	}
	if !f.LastModified.IsZero() {
		lm := f.LastModified
		resp.LastModified = &lm
	}
	return resp
}
