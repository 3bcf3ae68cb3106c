// Package ipgeo asks an IP-geolocation service where this machine is.
package ipgeo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"geofoto/pkg/location"
)

// Client talks to an ipinfo-style endpoint that answers with
// {"loc": "lat,lon", ...}.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type response struct {
	Loc     string `json:"loc"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Lookup issues exactly one request; there is no retry.
func (c *Client) Lookup(ctx context.Context) (location.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("ip geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return location.Coordinate{}, fmt.Errorf("ip geolocation error: status %d: %s", resp.StatusCode, body)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return location.Coordinate{}, fmt.Errorf("decode response: %w", err)
	}
	return ParseLoc(out.Loc)
}

// ParseLoc parses the "lat,lon" composite field.
func ParseLoc(s string) (location.Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return location.Coordinate{}, fmt.Errorf("malformed loc %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("malformed loc latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return location.Coordinate{}, fmt.Errorf("malformed loc longitude %q: %w", parts[1], err)
	}
	c := location.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return location.Coordinate{}, fmt.Errorf("loc %q out of range", s)
	}
	return c, nil
}

func (c *Client) Name() location.Source { return location.SourceIP }

// Locate is the resolver step; every failure is absorbed.
func (c *Client) Locate(ctx context.Context, _ location.Input) (location.Coordinate, bool) {
	coord, err := c.Lookup(ctx)
	if err != nil {
		c.logger.Debug("ip geolocation failed", "error", err)
		return location.Coordinate{}, false
	}
	return coord, true
}
