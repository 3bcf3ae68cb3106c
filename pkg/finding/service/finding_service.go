package service

import (
	"context"
	"errors"

	"geofoto/entities"
)

// ErrValidation wraps every field-level rejection.
var ErrValidation = errors.New("invalid finding")

type FindingService interface {
	// Save validates f, normalizes it and inserts it. f.ID is set on success.
	Save(ctx context.Context, f *entities.Finding) error
	ListAll(ctx context.Context) ([]entities.Finding, error)
}
