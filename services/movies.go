package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"moviehub/models"
)

// ListMovies fetches the full movie catalog
func (c *Client) ListMovies(ctx context.Context) ([]models.ContentItem, error) {
	var items []models.ContentItem
	if err := c.do(ctx, http.MethodGet, "/movies", nil, nil, &items); err != nil {
		return nil, err
	}
	tagContent(items, models.ContentTypeMovie)
	return items, nil
}

// SearchMovies fetches movies whose title matches the given term
func (c *Client) SearchMovies(ctx context.Context, title string) ([]models.ContentItem, error) {
	query := url.Values{"title": {title}}
	var items []models.ContentItem
	if err := c.do(ctx, http.MethodGet, "/movies/search", query, nil, &items); err != nil {
		return nil, err
	}
	tagContent(items, models.ContentTypeMovie)
	return items, nil
}

// GetMovie fetches a single movie by id
func (c *Client) GetMovie(ctx context.Context, id int) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), nil, nil, &item); err != nil {
		return nil, err
	}
	item.Type = models.ContentTypeMovie
	return &item, nil
}

// CreateMovie creates a new movie (admin only)
func (c *Client) CreateMovie(ctx context.Context, movie *models.ContentItem) (*models.ContentItem, error) {
	var created models.ContentItem
	if err := c.do(ctx, http.MethodPost, "/movies", nil, movie, &created); err != nil {
		return nil, err
	}
	created.Type = models.ContentTypeMovie
	return &created, nil
}

// UpdateMovie updates an existing movie (admin only)
func (c *Client) UpdateMovie(ctx context.Context, id int, movie *models.ContentItem) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/movies/%d", id), nil, movie, nil)
}

// DeleteMovie deletes a movie (admin only)
func (c *Client) DeleteMovie(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/movies/%d", id), nil, nil, nil)
}

// tagContent stamps the variant on items decoded from a variant-specific
// endpoint; the backend does not include it in the payload.
func tagContent(items []models.ContentItem, t models.ContentType) {
	for i := range items {
		items[i].Type = t
	}
}
