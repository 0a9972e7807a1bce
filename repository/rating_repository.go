package repository

import (
	"database/sql"
	"fmt"

	"moviehub/database"
	"moviehub/models"
)

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	db *database.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *database.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert stores the user's score for a content item, overwriting any previous
// score from the same user.
func (r *RatingRepository) Upsert(contentID int, t models.ContentType, userID, score int) error {
	_, err := r.db.Exec(`
		INSERT INTO ratings (content_id, content_type, user_id, score)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (content_id, content_type, user_id) DO UPDATE SET score = excluded.score
	`, contentID, string(t), userID, score)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

// Aggregate computes the average score and count for a content item. An item
// nobody has rated yields a zero aggregate, not an error.
func (r *RatingRepository) Aggregate(contentID int, t models.ContentType) (*models.RatingAggregate, error) {
	var agg models.RatingAggregate
	err := r.db.QueryRow(`
		SELECT COALESCE(AVG(score), 0), COUNT(score)
		FROM ratings
		WHERE content_id = ? AND content_type = ?
	`, contentID, string(t)).Scan(&agg.AverageRating, &agg.RatingCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	return &agg, nil
}

// UserScore retrieves one user's score for a content item
func (r *RatingRepository) UserScore(contentID int, t models.ContentType, userID int) (*models.UserRating, error) {
	rating := models.UserRating{ContentID: contentID, ContentType: t}
	err := r.db.QueryRow(`
		SELECT score FROM ratings
		WHERE content_id = ? AND content_type = ? AND user_id = ?
	`, contentID, string(t), userID).Scan(&rating.Score)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("rating for %s %d by user %d: %w", t, contentID, userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}
