// Package web holds the embedded HTML templates and the Echo renderer.
package web

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"geofoto/entities"
	"geofoto/pkg/location"
	"geofoto/pkg/mapview"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateRenderer is the html/template renderer installed on Echo.
type TemplateRenderer struct {
	templates *template.Template
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

var funcMap = template.FuncMap{
	"deg": func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) },
	"degp": func(v *float64) string {
		if v == nil {
			return "unknown"
		}
		return strconv.FormatFloat(*v, 'f', 6, 64)
	},
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
}

func NewRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// WantsJSON reports whether the client asked for JSON instead of a page.
func WantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

type UnlockPage struct {
	Error string
}

// FormValues echoes what the user typed so a rejected form keeps its input.
type FormValues struct {
	Latitude         string
	Longitude        string
	Classification   string
	DepthMM          string
	LengthMM         string
	SupportMaterial  string
	HasPatterns      bool
	PatternCount     string
	HasStraightLines bool
	Notes            string
}

type IndexPage struct {
	Location        location.Result
	Map             mapview.View
	Classifications []entities.Classification
	Form            FormValues
	Preview         template.URL
	Error           string
	Notice          string
	Saved           *entities.Finding
}
