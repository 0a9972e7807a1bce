package services

import (
	"context"
	"fmt"
	"net/http"

	"moviehub/models"
)

// ListReviews fetches all reviews for a content item
func (c *Client) ListReviews(ctx context.Context, contentID int, t models.ContentType) ([]models.Review, error) {
	var reviews []models.Review
	path := fmt.Sprintf("/reviews/content/%d/%s", contentID, t)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview submits a new review and returns the server-assigned record
func (c *Client) CreateReview(ctx context.Context, review models.NewReview) (*models.Review, error) {
	var created models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteReview deletes a review by id
func (c *Client) DeleteReview(ctx context.Context, reviewID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d", reviewID), nil, nil, nil)
}
