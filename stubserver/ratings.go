package stubserver

import (
	"errors"
	"log"
	"net/http"

	"moviehub/models"
	"moviehub/repository"
)

func (s *Server) contentRatingHandler(w http.ResponseWriter, r *http.Request) {
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

	agg, err := s.ratings.Aggregate(id, t)
	if err != nil {
		log.Printf("Error aggregating ratings for %s %d: %v", t, id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, agg)
}

func (s *Server) userRatingHandler(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
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

	rating, err := s.ratings.UserScore(id, t, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "rating not found")
			return
		}
		log.Printf("Error getting rating for %s %d: %v", t, id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, rating)
}

type ratingPayload struct {
	ContentID   int    `json:"contentId" validate:"required,gt=0"`
	ContentType string `json:"contentType" validate:"required,oneof=MOVIE SERIES"`
	Score       int    `json:"score" validate:"required,gte=1,lte=10"`
}

func (s *Server) submitRatingHandler(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
	var payload ratingPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	t := models.ContentType(payload.ContentType)
	if _, err := s.content.GetByID(t, payload.ContentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "content not found")
			return
		}
		log.Printf("Error checking content for rating: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := s.ratings.Upsert(payload.ContentID, t, claims.UserID, payload.Score); err != nil {
		log.Printf("Error upserting rating: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Return the fresh aggregate so callers can skip a round trip if they want
	agg, err := s.ratings.Aggregate(payload.ContentID, t)
	if err != nil {
		log.Printf("Error aggregating ratings: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, agg)
}
