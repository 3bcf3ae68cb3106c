package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"geofoto/config"
	"geofoto/router"
	"geofoto/web"

	// Auth
	"geofoto/pkg/auth"
	authCtrlImp "geofoto/pkg/auth/controllerImp"
	"geofoto/pkg/middleware"

	// Finding
	findingCtrlImp "geofoto/pkg/finding/controllerImp"
	findingRepoImp "geofoto/pkg/finding/repositoryImp"
	findingSvcImp "geofoto/pkg/finding/serviceImp"

	// Location
	"geofoto/pkg/location"
	"geofoto/pkg/location/exifgps"
	"geofoto/pkg/location/geocode"
	"geofoto/pkg/location/ipgeo"

	// Health + metrics
	healthCtrlImp "geofoto/pkg/health/controllerImp"
	"geofoto/pkg/observability"
)

func main() {
	// 1) Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("config loaded", "cfg", cfg.Redacted())
	metrics := observability.NewMetrics()

	// 2) Store: schema + legacy import before the first request
	repo := findingRepoImp.New(cfg.DBPath)
	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = repo.Initialize(initCtx)
	cancel()
	if err != nil {
		logger.Error("initialize store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	// 3) Location chain: photo EXIF, then IP, then the fixed place
	strategies := []location.Strategy{exifgps.New()}
	if cfg.EnableIPGeo {
		strategies = append(strategies, ipgeo.NewClient(cfg.IPGeoEndpoint, cfg.HTTPTimeout, logger))
	} else {
		logger.Info("ip geolocation disabled")
	}
	if cfg.EnableGeocode {
		gc := geocode.NewClient(cfg.GeocodeEndpoint, cfg.GeocodeUserAgent, cfg.HTTPTimeout, logger)
		strategies = append(strategies, geocode.NewStrategy(gc, cfg.GeocodePlace))
	} else {
		logger.Info("forward geocoding disabled")
	}
	resolver := location.NewResolver(logger, metrics, strategies...)

	// 4) Controllers
	gate := auth.NewGate(cfg.AppPassword)
	aCtrl := authCtrlImp.NewAuthController(gate, metrics, logger)
	fCtrl := findingCtrlImp.New(findingSvcImp.NewFindingService(repo), resolver, metrics, logger, cfg.MaxUploadMB)
	hCtrl := healthCtrlImp.NewHealthCtrl(repo)

	// 5) Echo
	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Error("parse templates", "error", err)
		os.Exit(1)
	}
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "remote_ip", v.RemoteIP}
			if v.Error != nil {
				logger.Error("request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	}))

	r := router.New(e, middleware.AccessGate(gate, metrics, logger), aCtrl, fCtrl, hCtrl)

	// 6) Start
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
