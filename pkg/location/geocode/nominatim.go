// Package geocode turns a place name into coordinates using a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"geofoto/pkg/location"
)

var ErrNotFound = errors.New("geocode: no match")

type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(endpoint, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Forward resolves query to the best matching coordinate.
func (c *Client) Forward(ctx context.Context, query string) (location.Coordinate, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("create request: %w", err)
	}
	// Nominatim refuses anonymous clients.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("forward geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return location.Coordinate{}, fmt.Errorf("geocoding API error: status %d: %s", resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return location.Coordinate{}, fmt.Errorf("decode response: %w", err)
	}
	if len(places) == 0 {
		return location.Coordinate{}, fmt.Errorf("%w for %q", ErrNotFound, query)
	}

	p := places[0]
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return location.Coordinate{Lat: lat, Lon: lon}, nil
}

// Strategy geocodes one fixed place name. It is the last-resort step of the
// resolver chain.
type Strategy struct {
	client *Client
	place  string
}

func NewStrategy(client *Client, place string) *Strategy {
	return &Strategy{client: client, place: place}
}

func (s *Strategy) Name() location.Source { return location.SourceGeocode }

func (s *Strategy) Locate(ctx context.Context, _ location.Input) (location.Coordinate, bool) {
	if s.place == "" {
		return location.Coordinate{}, false
	}
	c, err := s.client.Forward(ctx, s.place)
	if err != nil {
		s.client.logger.Debug("forward geocoding failed", "place", s.place, "error", err)
		return location.Coordinate{}, false
	}
	return c, true
}
