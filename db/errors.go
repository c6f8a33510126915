package db

import (
	"strings"

	"github.com/bonnetkb/bonnet/errors"
)

// ErrDatabaseClosed is returned when operations are attempted on a closed
// database.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed checks if an error indicates the database connection is
// closed. Handles both wrapped ErrDatabaseClosed errors and raw sql/sqlite
// driver errors, which we cannot wrap at the source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "database is closed") ||
		strings.Contains(errMsg, "sql: database is closed")
}

// IsUniqueViolation checks if an error is a SQLite UNIQUE constraint failure.
// Used to map primary key collisions onto the duplicate identifier error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
