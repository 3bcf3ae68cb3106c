package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"geofoto/database"
	"geofoto/entities"
	"geofoto/pkg/finding/repository"
)

// findingRepo opens the SQLite file for every operation and closes it when
// done, so no connection outlives a request.
type findingRepo struct {
	path string
	now  func() time.Time
}

func New(path string) repository.FindingRepository {
	return &findingRepo{path: path, now: time.Now}
}

func (r *findingRepo) with(ctx context.Context, fn func(db *gorm.DB) error) (err error) {
	db, err := database.OpenSQLite(r.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := database.Close(db); cerr != nil && err == nil {
			err = fmt.Errorf("close sqlite: %w", cerr)
		}
	}()
	return fn(db.WithContext(ctx))
}

func (r *findingRepo) Initialize(ctx context.Context) error {
	return r.with(ctx, database.EnsureSchema)
}

func (r *findingRepo) Insert(ctx context.Context, f *entities.Finding) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = r.now().UTC()
	}
	return r.with(ctx, func(db *gorm.DB) error {
		if err := db.Create(f).Error; err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
		return nil
	})
}

func (r *findingRepo) ListAll(ctx context.Context) ([]entities.Finding, error) {
	out := []entities.Finding{}
	err := r.with(ctx, func(db *gorm.DB) error {
		if err := db.Order("id ASC").Find(&out).Error; err != nil {
			return fmt.Errorf("list findings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *findingRepo) Ping(ctx context.Context) error {
	return r.with(ctx, func(db *gorm.DB) error {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("db.DB(): %w", err)
		}
		return sqlDB.PingContext(ctx)
	})
}
