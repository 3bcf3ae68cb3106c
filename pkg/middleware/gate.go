package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"geofoto/pkg/auth"
	"geofoto/web"
)

// AccessGate checks the presented secret on every request. The secret comes
// from the X-GeoFoto-Secret header or the geofoto_secret cookie. Pages are
// redirected to /unlock; JSON clients get a 401.
func AccessGate(gate *auth.Gate, obs auth.DenialObserver, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			candidate := c.Request().Header.Get(auth.HeaderName)
			if candidate == "" {
				if ck, err := c.Cookie(auth.CookieName); err == nil {
					candidate = ck.Value
				}
			}
			if gate.Allow(candidate) {
				return next(c)
			}

			logger.Info("access denied", "path", c.Request().URL.Path, "remote_ip", c.RealIP())
			if obs != nil {
				obs.ObserveDenial()
			}
			if web.WantsJSON(c) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied"})
			}
			return c.Redirect(http.StatusSeeOther, "/unlock")
		}
	}
}
