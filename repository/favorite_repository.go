package repository

import (
	"fmt"
	"log"

	"moviehub/database"
	"moviehub/models"
)

// FavoriteRepository handles database operations for favorites
type FavoriteRepository struct {
	db *database.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *database.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListByUser retrieves a user's favorite references, most recently added first
func (r *FavoriteRepository) ListByUser(userID int) ([]models.FavoriteRef, error) {
	rows, err := r.db.Query(`
		SELECT content_id, content_type
		FROM favorites
		WHERE user_id = ?
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var refs []models.FavoriteRef
	for rows.Next() {
		var ref models.FavoriteRef
		if err := rows.Scan(&ref.ContentID, &ref.ContentType); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return refs, nil
}

// Add marks a content item as a favorite. Adding an existing favorite is a
// no-op, not an error.
func (r *FavoriteRepository) Add(contentID int, t models.ContentType, userID int) error {
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO favorites (content_id, content_type, user_id)
		VALUES (?, ?, ?)
	`, contentID, string(t), userID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove unmarks a favorite
func (r *FavoriteRepository) Remove(contentID int, t models.ContentType, userID int) error {
	result, err := r.db.Exec(`
		DELETE FROM favorites
		WHERE content_id = ? AND content_type = ? AND user_id = ?
	`, contentID, string(t), userID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("favorite %s %d for user %d: %w", t, contentID, userID, ErrNotFound)
	}
	return nil
}

// Exists reports whether the user has favorited the content item
func (r *FavoriteRepository) Exists(contentID int, t models.ContentType, userID int) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(1) FROM favorites
		WHERE content_id = ? AND content_type = ? AND user_id = ?
	`, contentID, string(t), userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
