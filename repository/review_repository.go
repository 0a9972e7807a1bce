package repository

import (
	"database/sql"
	"fmt"
	"log"

	"moviehub/database"
	"moviehub/models"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListByContent retrieves all reviews for one content item, newest first,
// with the author's username joined in.
func (r *ReviewRepository) ListByContent(contentID int, t models.ContentType) ([]models.Review, error) {
	rows, err := r.db.Query(`
		SELECT rv.id, rv.content_id, rv.content_type, rv.user_id, u.username, rv.content, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.content_id = ? AND rv.content_type = ?
		ORDER BY rv.created_at DESC, rv.id DESC
	`, contentID, string(t))
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID, &review.ContentID, &review.ContentType,
			&review.UserID, &review.Username, &review.Content, &review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return reviews, nil
}

// Create inserts a new review and fills in its assigned ID
func (r *ReviewRepository) Create(review *models.Review) error {
	result, err := r.db.Exec(`
		INSERT INTO reviews (content_id, content_type, user_id, content)
		VALUES (?, ?, ?, ?)
	`, review.ContentID, string(review.ContentType), review.UserID, review.Content)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	review.ID = int(id)

	// Read back the stored row for the timestamp
	return r.db.QueryRow(
		"SELECT created_at FROM reviews WHERE id = ?", review.ID,
	).Scan(&review.CreatedAt)
}

// GetByID retrieves one review, username joined in
func (r *ReviewRepository) GetByID(id int) (*models.Review, error) {
	var review models.Review
	err := r.db.QueryRow(`
		SELECT rv.id, rv.content_id, rv.content_type, rv.user_id, u.username, rv.content, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.id = ?
	`, id).Scan(
		&review.ID, &review.ContentID, &review.ContentType,
		&review.UserID, &review.Username, &review.Content, &review.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("review with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// Delete removes a review
func (r *ReviewRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review with id %d: %w", id, ErrNotFound)
	}
	return nil
}
