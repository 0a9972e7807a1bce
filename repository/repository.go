// Package repository provides the data access layer for the stub backend.
package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a queried row does not exist
var ErrNotFound = errors.New("not found")

// Helper functions for handling null values
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(i int) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(i), Valid: true}
}
