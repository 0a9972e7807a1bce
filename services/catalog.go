package services

import (
	"context"
	"fmt"

	"moviehub/models"
)

// Variant-generic dispatchers used by the view-models, which work with either
// catalog tab through the same call.

// ListContent fetches the full catalog for the given variant
func (c *Client) ListContent(ctx context.Context, t models.ContentType) ([]models.ContentItem, error) {
	switch t {
	case models.ContentTypeMovie:
		return c.ListMovies(ctx)
	case models.ContentTypeSeries:
		return c.ListSeries(ctx)
	}
	return nil, fmt.Errorf("unknown content type %q", t)
}

// SearchContent searches the given variant by title
func (c *Client) SearchContent(ctx context.Context, t models.ContentType, title string) ([]models.ContentItem, error) {
	switch t {
	case models.ContentTypeMovie:
		return c.SearchMovies(ctx, title)
	case models.ContentTypeSeries:
		return c.SearchSeries(ctx, title)
	}
	return nil, fmt.Errorf("unknown content type %q", t)
}

// GetContent fetches a single item of the given variant
func (c *Client) GetContent(ctx context.Context, t models.ContentType, id int) (*models.ContentItem, error) {
	switch t {
	case models.ContentTypeMovie:
		return c.GetMovie(ctx, id)
	case models.ContentTypeSeries:
		return c.GetSeries(ctx, id)
	}
	return nil, fmt.Errorf("unknown content type %q", t)
}

// CreateContent creates a new item of the given variant (admin only)
func (c *Client) CreateContent(ctx context.Context, t models.ContentType, item *models.ContentItem) (*models.ContentItem, error) {
	switch t {
	case models.ContentTypeMovie:
		return c.CreateMovie(ctx, item)
	case models.ContentTypeSeries:
		return c.CreateSeries(ctx, item)
	}
	return nil, fmt.Errorf("unknown content type %q", t)
}

// UpdateContent updates an existing item of the given variant (admin only)
func (c *Client) UpdateContent(ctx context.Context, t models.ContentType, id int, item *models.ContentItem) error {
	switch t {
	case models.ContentTypeMovie:
		return c.UpdateMovie(ctx, id, item)
	case models.ContentTypeSeries:
		return c.UpdateSeries(ctx, id, item)
	}
	return fmt.Errorf("unknown content type %q", t)
}

// DeleteContent deletes an item of the given variant (admin only)
func (c *Client) DeleteContent(ctx context.Context, t models.ContentType, id int) error {
	switch t {
	case models.ContentTypeMovie:
		return c.DeleteMovie(ctx, id)
	case models.ContentTypeSeries:
		return c.DeleteSeries(ctx, id)
	}
	return fmt.Errorf("unknown content type %q", t)
}
