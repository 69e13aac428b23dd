package service

import (
	"github.com/edugo-labs/aula-api/internal/repository"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

// mapWriteError translates a repository write failure. Unique-constraint
// violations become conflicts so a racing duplicate surfaces as 409 rather
// than 500; anything else is an internal error.
func mapWriteError(err error, conflictMsg, internalMsg string) error {
	if repository.IsUniqueViolation(err) {
		return errors.Clone(errors.ErrConflict, conflictMsg)
	}
	return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, internalMsg)
}
