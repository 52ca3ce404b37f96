package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (username, email, one review or cart row per product)
	ErrDuplicate = errors.New("record already exists")

	// ErrInsufficientStock is returned when a conditional stock update
	// cannot be applied without going negative
	ErrInsufficientStock = errors.New("insufficient stock")
)

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
