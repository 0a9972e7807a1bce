package stubserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"moviehub/models"
	"moviehub/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// tokenClaims is the JWT payload issued at login
type tokenClaims struct {
	UserID   int    `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(account *repository.Account) (string, error) {
	claims := tokenClaims{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Server) parseToken(raw string) (*tokenClaims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

type authedHandler func(w http.ResponseWriter, r *http.Request, claims *tokenClaims)

// requireAuth rejects requests without a valid bearer token. The error
// messages are the ones the client recognizes as session invalidation.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		claims, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				respondError(w, http.StatusUnauthorized, "token expired")
				return
			}
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r, claims)
	}
}

// requireAdmin additionally rejects non-admin roles
func (s *Server) requireAdmin(next authedHandler) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request, claims *tokenClaims) {
		if claims.Role != models.RoleAdmin {
			respondError(w, http.StatusForbidden, "admin role required")
			return
		}
		next(w, r, claims)
	})
}

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	if _, err := s.users.GetByUsername(payload.Username); err == nil {
		respondError(w, http.StatusBadRequest, "username is already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	account := repository.Account{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(&account); err != nil {
		log.Printf("Error creating user: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondAuth(w, http.StatusCreated, &account)
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !s.decodeValid(w, r, &payload) {
		return
	}

	account, err := s.users.GetByUsername(payload.Username)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(payload.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	s.respondAuth(w, http.StatusOK, account)
}

func (s *Server) respondAuth(w http.ResponseWriter, status int, account *repository.Account) {
	token, err := s.issueToken(account)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, status, models.AuthResponse{
		Token:    token,
		Username: account.Username,
		Role:     account.Role,
	})
}
