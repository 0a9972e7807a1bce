// Package stubserver implements a small local backend speaking the same API
// the client consumes. It backs end-to-end tests and the `stub` subcommand.
package stubserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"moviehub/database"
	"moviehub/models"
	"moviehub/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Server holds the repositories and routing for the stub backend
type Server struct {
	content   *repository.ContentRepository
	users     *repository.UserRepository
	reviews   *repository.ReviewRepository
	ratings   *repository.RatingRepository
	favorites *repository.FavoriteRepository

	validate *validator.Validate
	secret   []byte
	router   *mux.Router
}

// NewServer creates a stub backend over the given database
func NewServer(db *database.DB, secret string) *Server {
	s := &Server{
		content:   repository.NewContentRepository(db),
		users:     repository.NewUserRepository(db),
		reviews:   repository.NewReviewRepository(db),
		ratings:   repository.NewRatingRepository(db),
		favorites: repository.NewFavoriteRepository(db),
		validate:  validator.New(),
		secret:    []byte(secret),
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

// Router returns the HTTP handler for the whole API
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", healthHandler).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	api.HandleFunc("/auth/register", s.registerHandler).Methods("POST")
	api.HandleFunc("/auth/login", s.loginHandler).Methods("POST")

	// Catalog endpoints, one set per variant
	for _, t := range []models.ContentType{models.ContentTypeMovie, models.ContentTypeSeries} {
		prefix := "/movies"
		if t == models.ContentTypeSeries {
			prefix = "/series"
		}
		t := t
		api.HandleFunc(prefix, s.listContentHandler(t)).Methods("GET")
		api.HandleFunc(prefix+"/search", s.searchContentHandler(t)).Methods("GET")
		api.HandleFunc(prefix+"/{id:[0-9]+}", s.getContentHandler(t)).Methods("GET")
		api.HandleFunc(prefix, s.requireAdmin(s.createContentHandler(t))).Methods("POST")
		api.HandleFunc(prefix+"/{id:[0-9]+}", s.requireAdmin(s.updateContentHandler(t))).Methods("PUT")
		api.HandleFunc(prefix+"/{id:[0-9]+}", s.requireAdmin(s.deleteContentHandler(t))).Methods("DELETE")
	}

	// Review endpoints
	api.HandleFunc("/reviews/content/{id:[0-9]+}/{type}", s.listReviewsHandler).Methods("GET")
	api.HandleFunc("/reviews", s.requireAuth(s.createReviewHandler)).Methods("POST")
	api.HandleFunc("/reviews/{id:[0-9]+}", s.requireAuth(s.deleteReviewHandler)).Methods("DELETE")

	// Rating endpoints
	api.HandleFunc("/ratings/content/{id:[0-9]+}/{type}", s.contentRatingHandler).Methods("GET")
	api.HandleFunc("/ratings/user/{id:[0-9]+}/{type}", s.requireAuth(s.userRatingHandler)).Methods("GET")
	api.HandleFunc("/ratings", s.requireAuth(s.submitRatingHandler)).Methods("POST")

	// Favorite endpoints
	api.HandleFunc("/favorites", s.requireAuth(s.listFavoritesHandler)).Methods("GET")
	api.HandleFunc("/favorites", s.requireAuth(s.addFavoriteHandler)).Methods("POST")
	api.HandleFunc("/favorites/check/{id:[0-9]+}/{type}", s.requireAuth(s.checkFavoriteHandler)).Methods("GET")
	api.HandleFunc("/favorites/{id:[0-9]+}/{type}", s.requireAuth(s.removeFavoriteHandler)).Methods("DELETE")
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes the {"message": ...} error body the client expects
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// pathID extracts the {id} route variable
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil && id > 0
}

// pathType extracts and validates the {type} route variable
func pathType(r *http.Request) (models.ContentType, bool) {
	switch models.ContentType(mux.Vars(r)["type"]) {
	case models.ContentTypeMovie:
		return models.ContentTypeMovie, true
	case models.ContentTypeSeries:
		return models.ContentTypeSeries, true
	}
	return "", false
}

// decodeValid decodes the request body into v and runs struct validation,
// writing the error response itself on failure.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		return "invalid field " + e.Field() + ": failed " + e.Tag() + " check"
	}
	return "validation failed"
}
