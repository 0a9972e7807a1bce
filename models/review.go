package models

import "time"

// Review represents a user review of a content item
type Review struct {
	ID          int         `json:"id"`
	ContentID   int         `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	UserID      int         `json:"userId,omitempty"`
	Username    string      `json:"username,omitempty"`
	Content     string      `json:"content"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// AuthorName returns the display name of the review author
func (r *Review) AuthorName() string {
	if r.Username == "" {
		return "Anonymous"
	}
	return r.Username
}

// NewReview is the payload for creating a review
type NewReview struct {
	ContentID   int         `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	Content     string      `json:"content"`
	Username    string      `json:"username,omitempty"`
}
