package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	UnlockPage(c echo.Context) error
	Unlock(c echo.Context) error
	Lock(c echo.Context) error
}
