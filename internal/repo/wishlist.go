package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tripweaver/internal/domain"
)

// WishlistRepo defines the persistence operations for saved attractions and
// folder placeholders. Records are keyed by user id and folder name; the
// folder name is the folder's only identity.
type WishlistRepo interface {
	// Save upserts a saved attraction keyed by (user, folder, attraction id).
	// Saving the same key again overwrites the stored data and timestamps.
	Save(ctx context.Context, rec domain.SavedAttraction) (domain.SavedAttraction, error)

	// ListByUser returns every saved attraction of the user, oldest save first.
	ListByUser(ctx context.Context, userID string) ([]domain.SavedAttraction, error)

	// ListByFolder returns the saved attractions of one folder, oldest save first.
	ListByFolder(ctx context.Context, userID, folderName string) ([]domain.SavedAttraction, error)

	// Remove deletes one saved attraction.
	// Returns domain.ErrNotFound if the record does not exist.
	Remove(ctx context.Context, userID, folderName, attractionID string) error

	// Exists reports whether attractionID is saved in any of the user's folders.
	Exists(ctx context.Context, userID, attractionID string) (bool, error)

	// UpsertFolder writes the placeholder record of a folder. Idempotent.
	UpsertFolder(ctx context.Context, userID, folderName string) (domain.FolderPlaceholder, error)

	// ListFolders returns the user's folder placeholders ordered by creation.
	ListFolders(ctx context.Context, userID string) ([]domain.FolderPlaceholder, error)

	// DeleteFolder removes every saved attraction of the folder and its
	// placeholder in one transaction, returning the number of attraction
	// records removed. Deleting a folder that does not exist is not an error.
	DeleteFolder(ctx context.Context, userID, folderName string) (int64, error)
}

// pgWishlistRepo is the Postgres implementation of WishlistRepo.
type pgWishlistRepo struct {
	db db
}

// NewWishlistRepo constructs a WishlistRepo backed by the provided db connection.
func NewWishlistRepo(db db) WishlistRepo {
	return &pgWishlistRepo{db: db}
}

const savedColumns = `doc_key, user_id, folder_name, attraction_id, attraction_data, saved_at, last_modified`

// Save upserts a saved attraction. Like a document set, the conflict branch
// replaces the whole record including saved_at.
func (r *pgWishlistRepo) Save(ctx context.Context, rec domain.SavedAttraction) (domain.SavedAttraction, error) {
	const q = `
		INSERT INTO saved_attractions (doc_key, user_id, folder_name, attraction_id, attraction_data)
		VALUES (@doc_key, @user_id, @folder_name, @attraction_id, @attraction_data)
		ON CONFLICT (user_id, folder_name, attraction_id) DO UPDATE
		SET attraction_data = EXCLUDED.attraction_data,
		    saved_at        = now(),
		    last_modified   = now()
		RETURNING ` + savedColumns

	args := pgx.NamedArgs{
		"doc_key":         domain.SavedAttractionKey(rec.UserID, rec.FolderName, rec.AttractionID),
		"user_id":         rec.UserID,
		"folder_name":     rec.FolderName,
		"attraction_id":   rec.AttractionID,
		"attraction_data": rec.Attraction,
	}

	result, err := scanSaved(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.SavedAttraction{}, fmt.Errorf("repo.WishlistRepo.Save: %w", err)
	}
	return result, nil
}

// ListByUser returns all saved attractions of a user.
func (r *pgWishlistRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedAttraction, error) {
	const q = `
		SELECT ` + savedColumns + `
		FROM saved_attractions
		WHERE user_id = @user_id
		ORDER BY saved_at, doc_key`

	recs, err := r.querySaved(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.WishlistRepo.ListByUser: %w", err)
	}
	return recs, nil
}

// ListByFolder returns the saved attractions in a single folder.
func (r *pgWishlistRepo) ListByFolder(ctx context.Context, userID, folderName string) ([]domain.SavedAttraction, error) {
	const q = `
		SELECT ` + savedColumns + `
		FROM saved_attractions
		WHERE user_id = @user_id AND folder_name = @folder_name
		ORDER BY saved_at, doc_key`

	recs, err := r.querySaved(ctx, q, pgx.NamedArgs{"user_id": userID, "folder_name": folderName})
	if err != nil {
		return nil, fmt.Errorf("repo.WishlistRepo.ListByFolder: %w", err)
	}
	return recs, nil
}

// Remove deletes a single saved attraction.
func (r *pgWishlistRepo) Remove(ctx context.Context, userID, folderName, attractionID string) error {
	const q = `
		DELETE FROM saved_attractions
		WHERE user_id = @user_id AND folder_name = @folder_name AND attraction_id = @attraction_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"user_id":       userID,
		"folder_name":   folderName,
		"attraction_id": attractionID,
	})
	if err != nil {
		return fmt.Errorf("repo.WishlistRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.WishlistRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

// Exists checks membership across all of the user's folders.
func (r *pgWishlistRepo) Exists(ctx context.Context, userID, attractionID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM saved_attractions
			WHERE user_id = @user_id AND attraction_id = @attraction_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "attraction_id": attractionID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.WishlistRepo.Exists: %w", err)
	}
	return exists, nil
}

// UpsertFolder writes the folder placeholder. An existing placeholder keeps
// its created_at and gets a fresh last_modified.
func (r *pgWishlistRepo) UpsertFolder(ctx context.Context, userID, folderName string) (domain.FolderPlaceholder, error) {
	const q = `
		INSERT INTO wishlist_folders (doc_key, user_id, folder_name)
		VALUES (@doc_key, @user_id, @folder_name)
		ON CONFLICT (user_id, folder_name) DO UPDATE SET last_modified = now()
		RETURNING doc_key, user_id, folder_name, created_at, last_modified`

	var f domain.FolderPlaceholder
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"doc_key":     domain.FolderKey(userID, folderName),
		"user_id":     userID,
		"folder_name": folderName,
	}).Scan(&f.ID, &f.UserID, &f.FolderName, &f.CreatedAt, &f.LastModified)
	if err != nil {
		return domain.FolderPlaceholder{}, fmt.Errorf("repo.WishlistRepo.UpsertFolder: %w", err)
	}
	return f, nil
}

// ListFolders returns the user's folder placeholders.
func (r *pgWishlistRepo) ListFolders(ctx context.Context, userID string) ([]domain.FolderPlaceholder, error) {
	const q = `
		SELECT doc_key, user_id, folder_name, created_at, last_modified
		FROM wishlist_folders
		WHERE user_id = @user_id
		ORDER BY created_at, folder_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.WishlistRepo.ListFolders: %w", err)
	}
	defer rows.Close()

	folders := []domain.FolderPlaceholder{}
	for rows.Next() {
		var f domain.FolderPlaceholder
		if err := rows.Scan(&f.ID, &f.UserID, &f.FolderName, &f.CreatedAt, &f.LastModified); err != nil {
			return nil, fmt.Errorf("repo.WishlistRepo.ListFolders: scan: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.WishlistRepo.ListFolders: rows: %w", err)
	}
	return folders, nil
}

// DeleteFolder removes a folder and its contents atomically.
func (r *pgWishlistRepo) DeleteFolder(ctx context.Context, userID, folderName string) (int64, error) {
	const deleteSaved = `DELETE FROM saved_attractions WHERE user_id = @user_id AND folder_name = @folder_name`
	const deleteFolder = `DELETE FROM wishlist_folders WHERE user_id = @user_id AND folder_name = @folder_name`

	args := pgx.NamedArgs{"user_id": userID, "folder_name": folderName}

	var removed int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, deleteSaved, args)
		if err != nil {
			return err
		}
		removed = tag.RowsAffected()
		_, err = tx.Exec(ctx, deleteFolder, args)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("repo.WishlistRepo.DeleteFolder: %w", err)
	}
	return removed, nil
}

func (r *pgWishlistRepo) querySaved(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.SavedAttraction, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []domain.SavedAttraction{}
	for rows.Next() {
		rec, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return recs, nil
}

// scanSaved maps a saved_attractions row. attraction_data is decoded from
// JSONB straight into the nested domain.Attraction.
func scanSaved(s scanner) (domain.SavedAttraction, error) {
	var rec domain.SavedAttraction
	err := s.Scan(&rec.ID, &rec.UserID, &rec.FolderName, &rec.AttractionID, &rec.Attraction, &rec.SavedAt, &rec.LastModified)
	if err != nil {
		return domain.SavedAttraction{}, err
	}
	return rec, nil
}
