package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New(
	e *echo.Echo,
	gate echo.MiddlewareFunc,
	authCtrl interface {
		UnlockPage(echo.Context) error
		Unlock(echo.Context) error
		Lock(echo.Context) error
	},
	findingCtrl interface {
		Index(echo.Context) error
		Locate(echo.Context) error
		Create(echo.Context) error
		ListJSON(echo.Context) error
		LocationJSON(echo.Context) error
		ExportXLSX(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/unlock", authCtrl.UnlockPage)
	e.POST("/unlock", authCtrl.Unlock)
	e.POST("/lock", authCtrl.Lock)

	// Everything below needs the shared secret.
	g := e.Group("", gate)
	g.GET("/", findingCtrl.Index)
	g.POST("/locate", findingCtrl.Locate)
	g.POST("/findings", findingCtrl.Create)
	g.GET("/findings/export.xlsx", findingCtrl.ExportXLSX)

	api := e.Group("/api", gate)
	api.GET("/findings", findingCtrl.ListJSON)
	api.GET("/location", findingCtrl.LocationJSON)
	return e
}
