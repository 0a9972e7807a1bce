package services

import (
	"context"
	"fmt"
	"net/http"

	"moviehub/models"
)

// ListFavorites fetches the current user's favorites
func (c *Client) ListFavorites(ctx context.Context) ([]models.FavoriteRef, error) {
	var refs []models.FavoriteRef
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// AddFavorite adds an item to the current user's favorites. Adding an item
// that is already a member is not an error.
func (c *Client) AddFavorite(ctx context.Context, contentID int, t models.ContentType) error {
	ref := models.FavoriteRef{ContentID: contentID, ContentType: t}
	return c.do(ctx, http.MethodPost, "/favorites", nil, ref, nil)
}

// RemoveFavorite removes an item from the current user's favorites. Removing
// a non-member is not an error.
func (c *Client) RemoveFavorite(ctx context.Context, contentID int, t models.ContentType) error {
	path := fmt.Sprintf("/favorites/%d/%s", contentID, t)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// CheckFavorite reports whether an item is in the current user's favorites
func (c *Client) CheckFavorite(ctx context.Context, contentID int, t models.ContentType) (bool, error) {
	var status models.FavoriteStatus
	path := fmt.Sprintf("/favorites/check/%d/%s", contentID, t)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &status); err != nil {
		return false, err
	}
	return status.IsFavorite, nil
}
