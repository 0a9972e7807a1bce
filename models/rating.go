package models

// Rating score bounds
const (
	RatingMin = 1
	RatingMax = 10
)

// RatingAggregate is the backend-computed average for a content item. A fresh
// item with no ratings reports averageRating 0 and ratingCount 0; the client
// never computes this itself.
type RatingAggregate struct {
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// UserRating is the current user's own score for a content item. At most one
// exists per user and item; submitting again overwrites it.
type UserRating struct {
	ContentID   int         `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	Score       int         `json:"score"`
}

// SubmitRating is the upsert payload for POST /ratings
type SubmitRating struct {
	ContentID   int         `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	Score       int         `json:"score"`
}
