package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port   string
	DBPath string

	// AppPassword is the shared secret checked by the access gate.
	// Empty means nobody gets in.
	AppPassword string

	IPGeoEndpoint    string
	EnableIPGeo      bool
	GeocodeEndpoint  string
	GeocodePlace     string
	GeocodeUserAgent string
	EnableGeocode    bool
	HTTPTimeout      time.Duration

	MaxUploadMB int
	LogLevel    string
	LogFormat   string
}

func Load() (AppConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("[cfg] no .env file loaded", "error", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}

	timeout, err := time.ParseDuration(get("HTTP_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return AppConfig{}, fmt.Errorf("invalid HTTP_TIMEOUT %q", os.Getenv("HTTP_TIMEOUT"))
	}
	maxUpload, err := strconv.Atoi(get("MAX_UPLOAD_MB", "10"))
	if err != nil || maxUpload <= 0 {
		return AppConfig{}, fmt.Errorf("invalid MAX_UPLOAD_MB %q", os.Getenv("MAX_UPLOAD_MB"))
	}

	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		DBPath:           get("DB_PATH", "petroglyphs.db"),
		AppPassword:      os.Getenv("APP_PASSWORD"),
		IPGeoEndpoint:    get("IPGEO_ENDPOINT", "https://ipinfo.io/json"),
		EnableIPGeo:      get("ENABLE_IPGEO", "true") == "true",
		GeocodeEndpoint:  get("GEOCODE_ENDPOINT", "https://nominatim.openstreetmap.org/search"),
		GeocodePlace:     get("GEOCODE_PLACE", "Barcelona, Spain"),
		GeocodeUserAgent: get("GEOCODE_USER_AGENT", "geo_app"),
		EnableGeocode:    get("ENABLE_GEOCODE", "true") == "true",
		HTTPTimeout:      timeout,
		MaxUploadMB:      maxUpload,
		LogLevel:         get("LOG_LEVEL", "info"),
		LogFormat:        get("LOG_FORMAT", "text"),
	}
	if cfg.AppPassword == "" {
		slog.Warn("[cfg] APP_PASSWORD is not set; every unlock attempt will be denied")
	}
	return cfg, nil
}

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	if c.AppPassword != "" {
		c.AppPassword = "***"
	}
	return c
}
