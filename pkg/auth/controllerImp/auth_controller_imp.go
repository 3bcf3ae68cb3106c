package controllerImp

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"geofoto/pkg/auth"
	"geofoto/pkg/auth/controller"
	"geofoto/web"
)

type authCtrl struct {
	gate   *auth.Gate
	obs    auth.DenialObserver
	logger *slog.Logger
}

func NewAuthController(gate *auth.Gate, obs auth.DenialObserver, logger *slog.Logger) controller.AuthController {
	if logger == nil {
		logger = slog.Default()
	}
	return &authCtrl{gate: gate, obs: obs, logger: logger}
}

func (h *authCtrl) UnlockPage(c echo.Context) error {
	return c.Render(http.StatusOK, "unlock.html", web.UnlockPage{})
}

func (h *authCtrl) Unlock(c echo.Context) error {
	candidate := c.FormValue("password")
	if !h.gate.Allow(candidate) {
		h.logger.Info("unlock refused", "remote_ip", c.RealIP())
		if h.obs != nil {
			h.obs.ObserveDenial()
		}
		if web.WantsJSON(c) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.DenialMessage})
		}
		return c.Render(http.StatusUnauthorized, "unlock.html", web.UnlockPage{Error: auth.DenialMessage})
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    candidate,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if web.WantsJSON(c) {
		return c.JSON(http.StatusOK, echo.Map{"unlocked": true})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *authCtrl) Lock(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusSeeOther, "/unlock")
}
