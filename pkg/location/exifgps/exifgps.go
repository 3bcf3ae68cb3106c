// Package exifgps reads the GPS position embedded in a photo's EXIF block.
package exifgps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/exif"

	"geofoto/pkg/location"
)

var ErrNoGPS = errors.New("exif: no usable gps position")

// Extract decodes the EXIF block in r and returns the GPS position.
// Any failure, including a panic inside the decoder on hostile input, comes
// back as an error.
func Extract(r io.Reader) (c location.Coordinate, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("exif: decoder panic: %v", p)
		}
	}()

	x, err := exif.Decode(r)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("exif decode: %w", err)
	}

	lat, err := readAngle(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	if err != nil {
		return location.Coordinate{}, err
	}
	lon, err := readAngle(x, exif.GPSLongitude, exif.GPSLongitudeRef)
	if err != nil {
		return location.Coordinate{}, err
	}

	c = location.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return location.Coordinate{}, fmt.Errorf("%w: %s out of range", ErrNoGPS, c)
	}
	return c, nil
}

func readAngle(x *exif.Exif, value, ref exif.FieldName) (float64, error) {
	tag, err := x.Get(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNoGPS, value, err)
	}
	if tag.Count != 3 {
		return 0, fmt.Errorf("%w: %s has %d values", ErrNoGPS, value, tag.Count)
	}
	var parts [3]float64
	for i := range parts {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return 0, fmt.Errorf("%w: %s[%d]: %v", ErrNoGPS, value, i, err)
		}
		if den == 0 {
			return 0, fmt.Errorf("%w: %s[%d] has zero denominator", ErrNoGPS, value, i)
		}
		parts[i] = float64(num) / float64(den)
	}

	refTag, err := x.Get(ref)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNoGPS, ref, err)
	}
	hemi, err := refTag.StringVal()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNoGPS, ref, err)
	}

	return location.DMS{Degrees: parts[0], Minutes: parts[1], Seconds: parts[2]}.Decimal(hemi), nil
}

// Strategy is the photo-metadata step of the resolver chain.
type Strategy struct{}

func New() *Strategy { return &Strategy{} }

func (s *Strategy) Name() location.Source { return location.SourceImage }

func (s *Strategy) Locate(_ context.Context, in location.Input) (location.Coordinate, bool) {
	if len(in.Image) == 0 {
		return location.Coordinate{}, false
	}
	c, err := Extract(bytes.NewReader(in.Image))
	if err != nil {
		return location.Coordinate{}, false
	}
	return c, true
}
