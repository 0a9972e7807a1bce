package stubserver

import (
	"errors"
	"log"
	"net/http"

	"moviehub/models"
	"moviehub/repository"
)

func (s *Server) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	t, ok := pathType(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid content type")
		return
	}

	reviews, err := s.reviews.ListByContent(id, t)
	if err != nil {
		log.Printf("Error listing reviews for %s %d: %v", t, id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

type reviewPayload struct {
	ContentID   int    `json:"contentId" validate:"required,gt=0"`
	ContentType string `json:"contentType" validate:"required,oneof=MOVIE SERIES"`
	Content     string `json:"content" validate:"required,max=5000"`
}

func (s *Server) createReviewHandler(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
	var payload reviewPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	t := models.ContentType(payload.ContentType)
	if _, err := s.content.GetByID(t, payload.ContentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "content not found")
			return
		}
		log.Printf("Error checking content for review: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	review := models.Review{
		ContentID:   payload.ContentID,
		ContentType: t,
		UserID:      claims.UserID,
		Username:    claims.Username,
		Content:     payload.Content,
	}
	if err := s.reviews.Create(&review); err != nil {
		log.Printf("Error creating review: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) deleteReviewHandler(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	review, err := s.reviews.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "review not found")
			return
		}
		log.Printf("Error getting review %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Only the author or an admin may delete
	if claims.Role != models.RoleAdmin && claims.UserID != review.UserID {
		respondError(w, http.StatusForbidden, "you can only delete your own reviews")
		return
	}

	if err := s.reviews.Delete(id); err != nil {
		log.Printf("Error deleting review %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
