package services

import (
	"context"
	"errors"
	"fmt"

	"sgp/internal/repositories"
)

// reference loads a record another record points at, reporting a missing
// one as ErrReferenceNotFound.
func reference[T any](ctx context.Context, entity string, id uint, get func(context.Context, uint) (*T, error)) (*T, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: %s id is required", ErrReferenceNotFound, entity)
	}
	record, err := get(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %d", ErrReferenceNotFound, entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", entity, id, err)
	}
	return record, nil
}
