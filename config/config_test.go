package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_PATH", "APP_PASSWORD", "IPGEO_ENDPOINT", "ENABLE_IPGEO",
		"GEOCODE_ENDPOINT", "GEOCODE_PLACE", "GEOCODE_USER_AGENT", "ENABLE_GEOCODE",
		"HTTP_TIMEOUT", "MAX_UPLOAD_MB", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "petroglyphs.db", cfg.DBPath)
	assert.Empty(t, cfg.AppPassword)
	assert.Equal(t, "https://ipinfo.io/json", cfg.IPGeoEndpoint)
	assert.True(t, cfg.EnableIPGeo)
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.GeocodeEndpoint)
	assert.Equal(t, "Barcelona, Spain", cfg.GeocodePlace)
	assert.Equal(t, "geo_app", cfg.GeocodeUserAgent)
	assert.True(t, cfg.EnableGeocode)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/finds.db")
	t.Setenv("APP_PASSWORD", "s3cret")
	t.Setenv("ENABLE_IPGEO", "false")
	t.Setenv("GEOCODE_PLACE", "Lima, Peru")
	t.Setenv("HTTP_TIMEOUT", "250ms")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/finds.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.AppPassword)
	assert.False(t, cfg.EnableIPGeo)
	assert.Equal(t, "Lima, Peru", cfg.GeocodePlace)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.MaxUploadMB)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_TIMEOUT")
}

func TestLoad_InvalidUploadLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_UPLOAD_MB", "-3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_UPLOAD_MB")
}

func TestRedacted(t *testing.T) {
	cfg := AppConfig{AppPassword: "s3cret", Port: "8080"}

	r := cfg.Redacted()
	assert.Equal(t, "***", r.AppPassword)
	assert.Equal(t, "8080", r.Port)
	assert.Equal(t, "s3cret", cfg.AppPassword)
}
