// Package models defines the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"
)

// ContentType distinguishes the two catalog variants
type ContentType string

// Content type constants, matching the values the backend expects
const (
	ContentTypeMovie  ContentType = "MOVIE"
	ContentTypeSeries ContentType = "SERIES"
)

// ParseContentType converts user input like "movie" or "series" into a ContentType
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MOVIE", "MOVIES":
		return ContentTypeMovie, nil
	case "SERIES":
		return ContentTypeSeries, nil
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

// SeriesStatus represents the airing status of a series
type SeriesStatus string

// Series status constants
const (
	SeriesOngoing   SeriesStatus = "Ongoing"
	SeriesCompleted SeriesStatus = "Completed"
	SeriesCancelled SeriesStatus = "Cancelled"
)

// PlaceholderPoster is shown when a content item has no poster of its own
const PlaceholderPoster = "https://via.placeholder.com/300x450?text=No+Image"

// ContentItem represents a catalog entry of either variant. The variant is
// fixed at creation and never changes; movie-only and series-only fields are
// simply left empty on the other variant.
type ContentItem struct {
	ID          int         `json:"id"`
	Type        ContentType `json:"-"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Genre       string      `json:"genre,omitempty"` // comma-separated tags
	ReleaseDate string      `json:"releaseDate,omitempty"`
	PosterURL   string      `json:"posterUrl,omitempty"`

	// Movie-only
	Director string `json:"director,omitempty"`
	Duration int    `json:"duration,omitempty"` // minutes

	// Series-only
	Seasons  int          `json:"seasons,omitempty"`
	Episodes int          `json:"episodes,omitempty"`
	Status   SeriesStatus `json:"status,omitempty"`

	// Rating fields as reported by the backend. AverageRating/RatingCount come
	// from the rating aggregate; Rating is the legacy raw field some rows carry.
	Rating        *float64 `json:"rating,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	RatingCount   int      `json:"ratingCount,omitempty"`
}

// Poster returns the item's poster URL, falling back to the placeholder
func (c *ContentItem) Poster() string {
	if c.PosterURL == "" {
		return PlaceholderPoster
	}
	return c.PosterURL
}

// ReleaseTime parses the release date. The backend serializes dates either as
// plain YYYY-MM-DD or with a time component appended.
func (c *ContentItem) ReleaseTime() (time.Time, bool) {
	if c.ReleaseDate == "" {
		return time.Time{}, false
	}
	datePart := c.ReleaseDate
	if i := strings.IndexByte(datePart, 'T'); i >= 0 {
		datePart = datePart[:i]
	}
	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ReleaseYear returns the year of the release date, or 0 when unknown
func (c *ContentItem) ReleaseYear() int {
	t, ok := c.ReleaseTime()
	if !ok {
		return 0
	}
	return t.Year()
}

// RatingValue returns the value used when sorting by rating: the aggregate
// average when present, otherwise the raw rating field. The second return is
// false when the item has neither.
func (c *ContentItem) RatingValue() (float64, bool) {
	if c.AverageRating != nil {
		return *c.AverageRating, true
	}
	if c.Rating != nil {
		return *c.Rating, true
	}
	return 0, false
}

// GenreTags splits the comma-separated genre string into trimmed tags
func (c *ContentItem) GenreTags() []string {
	if c.Genre == "" {
		return nil
	}
	parts := strings.Split(c.Genre, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
