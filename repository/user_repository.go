package repository

import (
	"database/sql"
	"fmt"
	"time"

	"moviehub/database"
)

// Account is a stored user row, password hash included. It never leaves the
// backend; the client-facing model carries only username and role.
type Account struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account and fills in its assigned ID
func (r *UserRepository) Create(account *Account) error {
	result, err := r.db.Exec(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES (?, ?, ?, ?)
	`, account.Username, nullString(account.Email), account.PasswordHash, account.Role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	account.ID = int(id)
	return nil
}

// GetByUsername retrieves an account by username
func (r *UserRepository) GetByUsername(username string) (*Account, error) {
	var account Account
	var email sql.NullString

	err := r.db.QueryRow(`
		SELECT id, username, email, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`, username).Scan(
		&account.ID, &account.Username, &email,
		&account.PasswordHash, &account.Role, &account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if email.Valid {
		account.Email = email.String
	}
	return &account, nil
}
