package services

import (
	"context"
	"fmt"
	"net/http"

	"moviehub/models"
)

// ContentRating fetches the backend-computed rating aggregate for an item
func (c *Client) ContentRating(ctx context.Context, contentID int, t models.ContentType) (*models.RatingAggregate, error) {
	var agg models.RatingAggregate
	path := fmt.Sprintf("/ratings/content/%d/%s", contentID, t)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// UserRating fetches the current user's rating for an item. Returns a
// not-found fault when the user has not rated it yet.
func (c *Client) UserRating(ctx context.Context, contentID int, t models.ContentType) (*models.UserRating, error) {
	var rating models.UserRating
	path := fmt.Sprintf("/ratings/user/%d/%s", contentID, t)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// SubmitRating creates or overwrites the current user's rating for an item
func (c *Client) SubmitRating(ctx context.Context, rating models.SubmitRating) error {
	return c.do(ctx, http.MethodPost, "/ratings", nil, rating, nil)
}
