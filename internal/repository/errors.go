package repository

import (
	"errors"

	"github.com/lib/pq"
)

// pq error code for unique_violation.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether the error is a storage-level uniqueness
// failure. The service layer runs a friendly pre-check first; the database
// constraint is the authoritative backstop when two writers race past it.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
