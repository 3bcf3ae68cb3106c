// Package location resolves where a finding was made.
//
// A Resolver walks an ordered list of strategies (photo EXIF, IP lookup,
// fixed-place geocoding) and stops at the first one that yields a
// coordinate. Strategies swallow their own failures; the resolver only ever
// sees "got a coordinate" or "nothing", and when every strategy comes up
// empty the Result says so explicitly instead of handing back 0,0.
package location

import (
	"context"
	"fmt"
	"log/slog"
)

type Source string

const (
	SourceImage   Source = "image"
	SourceIP      Source = "ip"
	SourceGeocode Source = "geocode"
	SourceManual  Source = "manual"
	SourceNone    Source = "none"
)

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string { return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon) }

// Valid reports whether c is inside the lat/lon domain.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Input is what a resolution attempt has to work with.
type Input struct {
	// Image holds the raw bytes of an uploaded photo, if any.
	Image []byte
}

// Result is either a coordinate with its source or absent (Found == false).
type Result struct {
	Coordinate
	Source Source `json:"source"`
	Found  bool   `json:"found"`
}

// Absent is the explicit "location unavailable" value.
func Absent() Result { return Result{Source: SourceNone} }

// Manual wraps user-entered coordinates.
func Manual(c Coordinate) Result { return Result{Coordinate: c, Source: SourceManual, Found: true} }

// Strategy is one way of finding a coordinate. Locate must not return
// partial data: either ok is true and the coordinate is usable, or ok is
// false.
type Strategy interface {
	Name() Source
	Locate(ctx context.Context, in Input) (Coordinate, bool)
}

// Observer is told about every finished resolution.
type Observer interface {
	ObserveResolution(source string)
}

type Resolver struct {
	strategies []Strategy
	logger     *slog.Logger
	observer   Observer
}

func NewResolver(logger *slog.Logger, observer Observer, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{strategies: strategies, logger: logger, observer: observer}
}

// Resolve tries each strategy in order and returns the first hit.
func (r *Resolver) Resolve(ctx context.Context, in Input) Result {
	res := Absent()
	for _, s := range r.strategies {
		if ctx.Err() != nil {
			break
		}
		c, ok := s.Locate(ctx, in)
		if ok && c.Valid() {
			res = Result{Coordinate: c, Source: s.Name(), Found: true}
			break
		}
		r.logger.Debug("location strategy gave no result", "strategy", s.Name())
	}
	if r.observer != nil {
		r.observer.ObserveResolution(string(res.Source))
	}
	if res.Found {
		r.logger.Info("location resolved", "source", res.Source, "lat", res.Lat, "lon", res.Lon)
	} else {
		r.logger.Info("location unavailable")
	}
	return res
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc struct {
	Source Source
	Fn     func(ctx context.Context, in Input) (Coordinate, bool)
}

func (f StrategyFunc) Name() Source { return f.Source }

func (f StrategyFunc) Locate(ctx context.Context, in Input) (Coordinate, bool) {
	return f.Fn(ctx, in)
}
