package repository

import (
	"context"

	"geofoto/entities"
)

type FindingRepository interface {
	// Initialize creates the table if needed. Safe on every start.
	Initialize(ctx context.Context) error
	Insert(ctx context.Context, f *entities.Finding) error
	ListAll(ctx context.Context) ([]entities.Finding, error)
	Ping(ctx context.Context) error
}
