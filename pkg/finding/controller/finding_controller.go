package controller

import "github.com/labstack/echo/v4"

type FindingController interface {
	Index(c echo.Context) error
	Locate(c echo.Context) error
	Create(c echo.Context) error
	ListJSON(c echo.Context) error
	LocationJSON(c echo.Context) error
	ExportXLSX(c echo.Context) error
}
