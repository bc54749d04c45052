package services

import (
	"errors"
	"fmt"

	"sgp/internal/repositories"
)

// Service errors. Handlers map each one to an HTTP status.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrReferenceNotFound  = errors.New("referenced record not found")
	ErrInUse              = errors.New("record is still referenced")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// fromRepo maps repository sentinels onto the service errors. onForeignKey
// is reported for a foreign key violation, which means a dangling reference
// on writes and a restricted delete on deletes.
func fromRepo(err error, onForeignKey error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repositories.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, repositories.ErrForeignKey):
		return fmt.Errorf("%w: %w", onForeignKey, err)
	case errors.Is(err, repositories.ErrInvalidValue):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
