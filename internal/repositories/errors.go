package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate value")
	// ErrForeignKey is returned when a write references a missing row, or a
	// delete targets a row that is still referenced.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrInvalidValue is returned when a CHECK constraint rejects a write.
	ErrInvalidValue = errors.New("value rejected by check constraint")
)

// translate maps driver and gorm errors onto the repository sentinels,
// keeping the original message for logs.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var sentinel error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		sentinel = ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		sentinel = ErrForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		sentinel = ErrInvalidValue
	default:
		// SQLite reports some constraint failures only through the message
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			sentinel = ErrDuplicate
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			sentinel = ErrForeignKey
		case strings.Contains(msg, "CHECK constraint failed"):
			sentinel = ErrInvalidValue
		default:
			return err
		}
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
