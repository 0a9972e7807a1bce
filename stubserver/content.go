package stubserver

import (
	"errors"
	"log"
	"net/http"

	"moviehub/models"
	"moviehub/repository"
)

// contentPayload is the admin create/update body for either variant. Fields
// of the other variant are simply ignored.
type contentPayload struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	ReleaseDate string `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
	PosterURL   string `json:"posterUrl" validate:"omitempty,url"`

	Director string `json:"director"`
	Duration int    `json:"duration" validate:"gte=0"`

	Seasons  int    `json:"seasons" validate:"gte=0"`
	Episodes int    `json:"episodes" validate:"gte=0"`
	Status   string `json:"status" validate:"omitempty,oneof=Ongoing Completed Cancelled"`
}

func (p *contentPayload) toItem(t models.ContentType) models.ContentItem {
	item := models.ContentItem{
		Type:        t,
		Title:       p.Title,
		Description: p.Description,
		Genre:       p.Genre,
		ReleaseDate: p.ReleaseDate,
		PosterURL:   p.PosterURL,
	}
	if t == models.ContentTypeSeries {
		item.Seasons = p.Seasons
		item.Episodes = p.Episodes
		item.Status = models.SeriesStatus(p.Status)
	} else {
		item.Director = p.Director
		item.Duration = p.Duration
	}
	return item
}

func (s *Server) listContentHandler(t models.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		items, err := s.content.List(t)
		if err != nil {
			log.Printf("Error listing %s: %v", t, err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if items == nil {
			items = []models.ContentItem{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

func (s *Server) searchContentHandler(t models.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.content.Search(t, r.URL.Query().Get("title"))
		if err != nil {
			log.Printf("Error searching %s: %v", t, err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if items == nil {
			items = []models.ContentItem{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

func (s *Server) getContentHandler(t models.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid id")
			return
		}

		item, err := s.content.GetByID(t, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				respondError(w, http.StatusNotFound, "content not found")
				return
			}
			log.Printf("Error getting %s %d: %v", t, id, err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

func (s *Server) createContentHandler(t models.ContentType) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, _ *tokenClaims) {
		var payload contentPayload
		if !s.decodeValid(w, r, &payload) {
			return
		}

		item := payload.toItem(t)
		if err := s.content.Create(&item); err != nil {
			log.Printf("Error creating %s: %v", t, err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respondJSON(w, http.StatusCreated, item)
	}
}

func (s *Server) updateContentHandler(t models.ContentType) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, _ *tokenClaims) {
		id, ok := pathID(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid id")
			return
		}

		var payload contentPayload
		if !s.decodeValid(w, r, &payload) {
			return
		}

		item := payload.toItem(t)
		item.ID = id
		if err := s.content.Update(&item); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				respondError(w, http.StatusNotFound, "content not found")
				return
			}
			log.Printf("Error updating %s %d: %v", t, id, err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

func (s *Server) deleteContentHandler(t models.ContentType) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, _ *tokenClaims) {
		id, ok := pathID(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid id")
			return
		}

		if err := s.content.Delete(t, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				respondError(w, http.StatusNotFound, "content not found")
				return
			}
			log.Printf("Error deleting %s %d: %v", t, id, err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
