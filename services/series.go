package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"moviehub/models"
)

// ListSeries fetches the full series catalog
func (c *Client) ListSeries(ctx context.Context) ([]models.ContentItem, error) {
	var items []models.ContentItem
	if err := c.do(ctx, http.MethodGet, "/series", nil, nil, &items); err != nil {
		return nil, err
	}
	tagContent(items, models.ContentTypeSeries)
	return items, nil
}

// SearchSeries fetches series whose title matches the given term
func (c *Client) SearchSeries(ctx context.Context, title string) ([]models.ContentItem, error) {
	query := url.Values{"title": {title}}
	var items []models.ContentItem
	if err := c.do(ctx, http.MethodGet, "/series/search", query, nil, &items); err != nil {
		return nil, err
	}
	tagContent(items, models.ContentTypeSeries)
	return items, nil
}

// GetSeries fetches a single series by id
func (c *Client) GetSeries(ctx context.Context, id int) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/series/%d", id), nil, nil, &item); err != nil {
		return nil, err
	}
	item.Type = models.ContentTypeSeries
	return &item, nil
}

// CreateSeries creates a new series (admin only)
func (c *Client) CreateSeries(ctx context.Context, series *models.ContentItem) (*models.ContentItem, error) {
	var created models.ContentItem
	if err := c.do(ctx, http.MethodPost, "/series", nil, series, &created); err != nil {
		return nil, err
	}
	created.Type = models.ContentTypeSeries
	return &created, nil
}

// UpdateSeries updates an existing series (admin only)
func (c *Client) UpdateSeries(ctx context.Context, id int, series *models.ContentItem) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/series/%d", id), nil, series, nil)
}

// DeleteSeries deletes a series (admin only)
func (c *Client) DeleteSeries(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/series/%d", id), nil, nil, nil)
}
