// Package mapview turns stored findings into what the map template draws.
package mapview

import (
	"fmt"

	"geofoto/entities"
)

const EmptyPlaceholder = "No findings with a known location yet."

type Point struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

type View struct {
	Center      Point   `json:"center"`
	Markers     []Point `json:"markers"`
	Empty       bool    `json:"empty"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// Build centres the view on the first point and puts one marker on every
// point. With no points the view is empty and carries the placeholder text.
func Build(points []Point) View {
	if len(points) == 0 {
		return View{Markers: []Point{}, Empty: true, Placeholder: EmptyPlaceholder}
	}
	return View{Center: points[0], Markers: points}
}

// FromFindings keeps the order of fs and skips findings without coordinates.
func FromFindings(fs []entities.Finding) []Point {
	out := make([]Point, 0, len(fs))
	for i := range fs {
		f := &fs[i]
		if !f.HasLocation() {
			continue
		}
		out = append(out, Point{
			Lat:   *f.Latitude,
			Lon:   *f.Longitude,
			Label: fmt.Sprintf("#%d %s", f.ID, f.Classification),
		})
	}
	return out
}
