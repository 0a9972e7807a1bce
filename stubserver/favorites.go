package stubserver

import (
	"errors"
	"log"
	"net/http"

	"moviehub/models"
	"moviehub/repository"
)

func (s *Server) listFavoritesHandler(w http.ResponseWriter, _ *http.Request, claims *tokenClaims) {
	refs, err := s.favorites.ListByUser(claims.UserID)
	if err != nil {
		log.Printf("Error listing favorites for user %d: %v", claims.UserID, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if refs == nil {
		refs = []models.FavoriteRef{}
	}
	respondJSON(w, http.StatusOK, refs)
}

type favoritePayload struct {
	ContentID   int    `json:"contentId" validate:"required,gt=0"`
	ContentType string `json:"contentType" validate:"required,oneof=MOVIE SERIES"`
}

func (s *Server) addFavoriteHandler(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
	var payload favoritePayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	t := models.ContentType(payload.ContentType)
	if _, err := s.content.GetByID(t, payload.ContentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "content not found")
			return
		}
		log.Printf("Error checking content for favorite: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := s.favorites.Add(payload.ContentID, t, claims.UserID); err != nil {
		log.Printf("Error adding favorite: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeFavoriteHandler(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
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

	// Removing a non-member is fine: the end state is what was asked for
	if err := s.favorites.Remove(id, t, claims.UserID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Error removing favorite: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkFavoriteHandler(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
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

	exists, err := s.favorites.Exists(id, t, claims.UserID)
	if err != nil {
		log.Printf("Error checking favorite: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, models.FavoriteStatus{IsFavorite: exists})
}
