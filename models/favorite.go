package models

// FavoriteRef identifies a content item in the current user's favorites list
type FavoriteRef struct {
	ContentID   int         `json:"contentId"`
	ContentType ContentType `json:"contentType"`
}

// FavoriteStatus is the response of the favorite membership check
type FavoriteStatus struct {
	IsFavorite bool `json:"isFavorite"`
}
