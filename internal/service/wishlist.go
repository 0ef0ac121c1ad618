package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// maxFolderNameLen bounds folder names; the name is part of every record key.
const maxFolderNameLen = 100

// WishlistService implements the wishlist store operations: saving
// attractions into named folders, listing and deleting folders, and
// membership checks. Every operation needs a user id.
type WishlistService struct {
	repo repo.WishlistRepo
}

// NewWishlistService constructs a WishlistService backed by the provided repo.
func NewWishlistService(r repo.WishlistRepo) *WishlistService {
	return &WishlistService{repo: r}
}

// SaveAttraction upserts a into the user's folder. Saving the same attraction
// into the same folder again overwrites the stored copy.
func (s *WishlistService) SaveAttraction(ctx context.Context, userID, folderName string, a domain.Attraction) (domain.SavedAttraction, error) {
	if userID == "" {
		return domain.SavedAttraction{}, domain.ErrUnauthenticated
	}
	name, err := normalizeFolderName(folderName)
	if err != nil {
		return domain.SavedAttraction{}, err
	}
	if err := validateAttraction(a); err != nil {
		return domain.SavedAttraction{}, err
	}

	saved, err := s.repo.Save(ctx, domain.SavedAttraction{
		UserID:       userID,
		FolderName:   name,
		AttractionID: a.ID,
		Attraction:   a.Clone(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "save attraction failed", "user_id", userID, "folder", name, "attraction_id", a.ID, "error", err)
		return domain.SavedAttraction{}, fmt.Errorf("service.WishlistService.SaveAttraction: %w", err)
	}
	return saved, nil
}

// ListFolders returns every folder of the user with its attractions, count
// and last-modified marker. Folders holding attractions come first in the
// order their first record was saved; folders that exist only as placeholders
// follow with a count of zero.
func (s *WishlistService) ListFolders(ctx context.Context, userID string) ([]domain.Folder, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "list wishlists failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("service.WishlistService.ListFolders: %w", err)
	}
	placeholders, err := s.repo.ListFolders(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "list folder placeholders failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("service.WishlistService.ListFolders: %w", err)
	}

	folders := AggregateFolders(recs)
	seen := make(map[string]bool, len(folders))
	for _, f := range folders {
		seen[f.Name] = true
	}
	for _, p := range placeholders {
		if seen[p.FolderName] {
			continue
		}
		seen[p.FolderName] = true
		folders = append(folders, domain.Folder{
			Name:         p.FolderName,
			Attractions:  []domain.Attraction{},
			LastModified: p.LastModified,
		})
	}
	return folders, nil
}

// FolderNames returns the names of the user's folder placeholders.
func (s *WishlistService) FolderNames(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	placeholders, err := s.repo.ListFolders(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "list folder names failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("service.WishlistService.FolderNames: %w", err)
	}
	names := make([]string, len(placeholders))
	for i, p := range placeholders {
		names[i] = p.FolderName
	}
	return names, nil
}

// CreateFolder writes the folder placeholder. Calling it for a folder that
// already exists is harmless.
func (s *WishlistService) CreateFolder(ctx context.Context, userID, folderName string) (domain.FolderPlaceholder, error) {
	if userID == "" {
		return domain.FolderPlaceholder{}, domain.ErrUnauthenticated
	}
	name, err := normalizeFolderName(folderName)
	if err != nil {
		return domain.FolderPlaceholder{}, err
	}

	f, err := s.repo.UpsertFolder(ctx, userID, name)
	if err != nil {
		slog.ErrorContext(ctx, "create folder failed", "user_id", userID, "folder", name, "error", err)
		return domain.FolderPlaceholder{}, fmt.Errorf("service.WishlistService.CreateFolder: %w", err)
	}
	return f, nil
}

// FolderAttractions returns the attractions saved in one folder.
// An unknown folder yields an empty list.
func (s *WishlistService) FolderAttractions(ctx context.Context, userID, folderName string) ([]domain.Attraction, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	name, err := normalizeFolderName(folderName)
	if err != nil {
		return nil, err
	}

	recs, err := s.repo.ListByFolder(ctx, userID, name)
	if err != nil {
		slog.ErrorContext(ctx, "list folder failed", "user_id", userID, "folder", name, "error", err)
		return nil, fmt.Errorf("service.WishlistService.FolderAttractions: %w", err)
	}
	out := make([]domain.Attraction, len(recs))
	for i, r := range recs {
		out[i] = r.Attraction
	}
	return out, nil
}

// RemoveAttraction deletes one saved attraction from a folder.
// Returns domain.ErrNotFound if it was not saved there.
func (s *WishlistService) RemoveAttraction(ctx context.Context, userID, folderName, attractionID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	name, err := normalizeFolderName(folderName)
	if err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, userID, name, attractionID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.ErrorContext(ctx, "remove attraction failed", "user_id", userID, "folder", name, "attraction_id", attractionID, "error", err)
		}
		return fmt.Errorf("service.WishlistService.RemoveAttraction: %w", err)
	}
	return nil
}

// DeleteFolder removes the folder placeholder and every attraction saved in
// the folder, atomically. Deleting a folder that does not exist succeeds.
func (s *WishlistService) DeleteFolder(ctx context.Context, userID, folderName string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	name, err := normalizeFolderName(folderName)
	if err != nil {
		return err
	}

	removed, err := s.repo.DeleteFolder(ctx, userID, name)
	if err != nil {
		slog.ErrorContext(ctx, "delete folder failed", "user_id", userID, "folder", name, "error", err)
		return fmt.Errorf("service.WishlistService.DeleteFolder: %w", err)
	}
	slog.InfoContext(ctx, "folder deleted", "user_id", userID, "folder", name, "removed", removed)
	return nil
}

// IsAttractionSaved reports whether attractionID is saved in any of the
// user's folders. Without a user the answer is false, not an error.
func (s *WishlistService) IsAttractionSaved(ctx context.Context, userID, attractionID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	ok, err := s.repo.Exists(ctx, userID, attractionID)
	if err != nil {
		slog.ErrorContext(ctx, "saved check failed", "user_id", userID, "attraction_id", attractionID, "error", err)
		return false, fmt.Errorf("service.WishlistService.IsAttractionSaved: %w", err)
	}
	return ok, nil
}

// normalizeFolderName trims surrounding whitespace and rejects empty or
// overlong names.
func normalizeFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: folder name is required", domain.ErrValidation)
	}
	if len(name) > maxFolderNameLen {
		return "", fmt.Errorf("%w: folder name must be at most %d characters", domain.ErrValidation, maxFolderNameLen)
	}
	return name, nil
}

// validateAttraction enforces the minimum an attraction needs to be stored
// or scheduled.
//   - ID must be non-empty.
//   - Rating must be within 0..5.
//   - Price must be Free, Paid, or unset.
func validateAttraction(a domain.Attraction) error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: attraction id is required", domain.ErrValidation)
	}
	if a.Rating < 0 || a.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrValidation)
	}
	if !a.Price.Valid() {
		return fmt.Errorf("%w: price must be Free or Paid", domain.ErrValidation)
	}
	return nil
}
