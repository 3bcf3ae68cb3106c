package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"geofoto/pkg/auth"
	"geofoto/pkg/middleware"
)

type stub struct{}

func (stub) ok(c echo.Context) error { return c.String(http.StatusOK, c.Path()) }

func (s stub) UnlockPage(c echo.Context) error   { return s.ok(c) }
func (s stub) Unlock(c echo.Context) error       { return s.ok(c) }
func (s stub) Lock(c echo.Context) error         { return s.ok(c) }
func (s stub) Index(c echo.Context) error        { return s.ok(c) }
func (s stub) Locate(c echo.Context) error       { return s.ok(c) }
func (s stub) Create(c echo.Context) error       { return s.ok(c) }
func (s stub) ListJSON(c echo.Context) error     { return s.ok(c) }
func (s stub) LocationJSON(c echo.Context) error { return s.ok(c) }
func (s stub) ExportXLSX(c echo.Context) error   { return s.ok(c) }
func (s stub) Health(c echo.Context) error       { return s.ok(c) }

func newRouter() *echo.Echo {
	gate := middleware.AccessGate(auth.NewGate("s3cret"), nil, nil)
	return New(echo.New(), gate, stub{}, stub{}, stub{})
}

func TestRoutes_Public(t *testing.T) {
	e := newRouter()
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodGet, "/metrics"},
		{http.MethodGet, "/unlock"},
		{http.MethodPost, "/unlock"},
		{http.MethodPost, "/lock"},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "%s %s", r.method, r.path)
	}
}

func TestRoutes_Gated(t *testing.T) {
	e := newRouter()
	gated := []struct {
		method, path string
		denied       int
	}{
		{http.MethodGet, "/", http.StatusSeeOther},
		{http.MethodPost, "/locate", http.StatusSeeOther},
		{http.MethodPost, "/findings", http.StatusSeeOther},
		{http.MethodGet, "/findings/export.xlsx", http.StatusSeeOther},
		{http.MethodGet, "/api/findings", http.StatusUnauthorized},
		{http.MethodGet, "/api/location", http.StatusUnauthorized},
	}

	for _, r := range gated {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
		assert.Equal(t, r.denied, rec.Code, "%s %s without secret", r.method, r.path)

		req := httptest.NewRequest(r.method, r.path, nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "s3cret"})
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "%s %s with secret", r.method, r.path)
		assert.Equal(t, r.path, rec.Body.String())
	}
}
