package repository

import (
	"database/sql"
	"fmt"
	"log"

	"moviehub/database"
	"moviehub/models"
)

// ContentRepository handles database operations for movies and series. The
// two variants live in separate tables with a shared core of columns; the
// repository dispatches on the content type.
type ContentRepository struct {
	db *database.DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func tableFor(t models.ContentType) string {
	if t == models.ContentTypeSeries {
		return "series"
	}
	return "movies"
}

func variantColumns(t models.ContentType) string {
	if t == models.ContentTypeSeries {
		return "c.seasons, c.episodes, c.status"
	}
	return "c.director, c.duration"
}

// List retrieves all items of one variant, with the rating aggregate joined in
func (r *ContentRepository) List(t models.ContentType) ([]models.ContentItem, error) {
	return r.query(t, "", nil)
}

// Search retrieves items of one variant whose title contains the term
func (r *ContentRepository) Search(t models.ContentType, title string) ([]models.ContentItem, error) {
	return r.query(t, "WHERE c.title LIKE ? COLLATE NOCASE", []any{"%" + title + "%"})
}

func (r *ContentRepository) query(t models.ContentType, where string, args []any) ([]models.ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.title, c.description, c.genre, c.release_date, c.poster_url,
			   %s, AVG(rt.score), COUNT(rt.score)
		FROM %s c
		LEFT JOIN ratings rt ON rt.content_id = c.id AND rt.content_type = ?
		%s
		GROUP BY c.id
		ORDER BY c.title COLLATE NOCASE
	`, variantColumns(t), tableFor(t), where)

	rows, err := r.db.Query(query, append([]any{string(t)}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableFor(t), err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var items []models.ContentItem
	for rows.Next() {
		item, err := scanContent(rows, t)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return items, nil
}

// GetByID retrieves one item of the given variant
func (r *ContentRepository) GetByID(t models.ContentType, id int) (*models.ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.title, c.description, c.genre, c.release_date, c.poster_url,
			   %s, AVG(rt.score), COUNT(rt.score)
		FROM %s c
		LEFT JOIN ratings rt ON rt.content_id = c.id AND rt.content_type = ?
		WHERE c.id = ?
		GROUP BY c.id
	`, variantColumns(t), tableFor(t))

	item, err := scanContent(r.db.QueryRow(query, string(t), id), t)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s with id %d: %w", tableFor(t), id, ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner, t models.ContentType) (*models.ContentItem, error) {
	item := models.ContentItem{Type: t}
	var description, genre, releaseDate, posterURL sql.NullString
	var avgScore sql.NullFloat64
	var ratingCount int

	var err error
	if t == models.ContentTypeSeries {
		var seasons, episodes sql.NullInt64
		var status sql.NullString
		err = row.Scan(
			&item.ID, &item.Title, &description, &genre, &releaseDate, &posterURL,
			&seasons, &episodes, &status, &avgScore, &ratingCount,
		)
		if err == nil {
			if seasons.Valid {
				item.Seasons = int(seasons.Int64)
			}
			if episodes.Valid {
				item.Episodes = int(episodes.Int64)
			}
			if status.Valid {
				item.Status = models.SeriesStatus(status.String)
			}
		}
	} else {
		var director sql.NullString
		var duration sql.NullInt64
		err = row.Scan(
			&item.ID, &item.Title, &description, &genre, &releaseDate, &posterURL,
			&director, &duration, &avgScore, &ratingCount,
		)
		if err == nil {
			if director.Valid {
				item.Director = director.String
			}
			if duration.Valid {
				item.Duration = int(duration.Int64)
			}
		}
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan %s: %w", tableFor(t), err)
	}

	if description.Valid {
		item.Description = description.String
	}
	if genre.Valid {
		item.Genre = genre.String
	}
	if releaseDate.Valid {
		item.ReleaseDate = releaseDate.String
	}
	if posterURL.Valid {
		item.PosterURL = posterURL.String
	}
	if avgScore.Valid {
		avg := avgScore.Float64
		item.AverageRating = &avg
	}
	item.RatingCount = ratingCount

	return &item, nil
}

// Create inserts a new item and fills in its assigned ID
func (r *ContentRepository) Create(item *models.ContentItem) error {
	var result sql.Result
	var err error
	if item.Type == models.ContentTypeSeries {
		result, err = r.db.Exec(`
			INSERT INTO series (title, description, genre, release_date, poster_url, seasons, episodes, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, item.Title, nullString(item.Description), nullString(item.Genre),
			nullString(item.ReleaseDate), nullString(item.PosterURL),
			nullInt(item.Seasons), nullInt(item.Episodes), nullString(string(item.Status)))
	} else {
		result, err = r.db.Exec(`
			INSERT INTO movies (title, description, genre, release_date, poster_url, director, duration)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, item.Title, nullString(item.Description), nullString(item.Genre),
			nullString(item.ReleaseDate), nullString(item.PosterURL),
			nullString(item.Director), nullInt(item.Duration))
	}
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tableFor(item.Type), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = int(id)
	return nil
}

// Update overwrites an existing item
func (r *ContentRepository) Update(item *models.ContentItem) error {
	var result sql.Result
	var err error
	if item.Type == models.ContentTypeSeries {
		result, err = r.db.Exec(`
			UPDATE series
			SET title = ?, description = ?, genre = ?, release_date = ?, poster_url = ?,
				seasons = ?, episodes = ?, status = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, item.Title, nullString(item.Description), nullString(item.Genre),
			nullString(item.ReleaseDate), nullString(item.PosterURL),
			nullInt(item.Seasons), nullInt(item.Episodes), nullString(string(item.Status)), item.ID)
	} else {
		result, err = r.db.Exec(`
			UPDATE movies
			SET title = ?, description = ?, genre = ?, release_date = ?, poster_url = ?,
				director = ?, duration = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, item.Title, nullString(item.Description), nullString(item.Genre),
			nullString(item.ReleaseDate), nullString(item.PosterURL),
			nullString(item.Director), nullInt(item.Duration), item.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", tableFor(item.Type), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s with id %d: %w", tableFor(item.Type), item.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an item along with its reviews, ratings and favorites
func (r *ContentRepository) Delete(t models.ContentType, id int) error {
	result, err := r.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", tableFor(t)), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", tableFor(t), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s with id %d: %w", tableFor(t), id, ErrNotFound)
	}

	for _, table := range []string{"reviews", "ratings", "favorites"} {
		if _, err := r.db.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE content_id = ? AND content_type = ?", table),
			id, string(t),
		); err != nil {
			return fmt.Errorf("failed to clean up %s: %w", table, err)
		}
	}
	return nil
}
