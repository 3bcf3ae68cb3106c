package serviceImp

import (
	"context"
	"fmt"
	"math"

	"geofoto/entities"
	repo "geofoto/pkg/finding/repository"
	"geofoto/pkg/finding/service"
)

type findingSvc struct{ r repo.FindingRepository }

func NewFindingService(r repo.FindingRepository) service.FindingService { return &findingSvc{r} }

func (s *findingSvc) Save(ctx context.Context, f *entities.Finding) error {
	if err := Normalize(f); err != nil {
		return err
	}
	return s.r.Insert(ctx, f)
}

func (s *findingSvc) ListAll(ctx context.Context) ([]entities.Finding, error) {
	return s.r.ListAll(ctx)
}

// Normalize applies the field rules in place. A pattern count without the
// pattern flag is reset to zero; the flag without a count of at least one is
// rejected.
func Normalize(f *entities.Finding) error {
	if !f.Classification.Valid() {
		return invalid("classification %q is not one of the allowed types", f.Classification)
	}
	if err := nonNegative("depth_mm", f.DepthMM); err != nil {
		return err
	}
	if err := nonNegative("length_mm", f.LengthMM); err != nil {
		return err
	}
	if (f.Latitude == nil) != (f.Longitude == nil) {
		return invalid("latitude and longitude must both be set or both be empty")
	}
	if f.Latitude != nil {
		if math.IsNaN(*f.Latitude) || *f.Latitude < -90 || *f.Latitude > 90 {
			return invalid("latitude %v out of range", *f.Latitude)
		}
		if math.IsNaN(*f.Longitude) || *f.Longitude < -180 || *f.Longitude > 180 {
			return invalid("longitude %v out of range", *f.Longitude)
		}
	}
	if f.PatternCount < 0 {
		return invalid("pattern_count must not be negative")
	}
	if !f.HasRecognizablePatterns {
		f.PatternCount = 0
	} else if f.PatternCount < 1 {
		return invalid("pattern_count must be at least 1 when patterns are present")
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return invalid("%s must be a non-negative number", field)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", service.ErrValidation, fmt.Sprintf(format, args...))
}
