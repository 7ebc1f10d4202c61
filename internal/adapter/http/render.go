package http

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateRenderer adapts html/template to echo.Renderer.
type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() *templateRenderer {
	funcs := template.FuncMap{
		"decimal": domain.FormatDecimal,
	}
	return &templateRenderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (t *templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

type listPage struct {
	Title   string
	Records []domain.ClimateRecord
}

type formPage struct {
	Title       string
	Action      string
	Locations   []string
	ID          int64
	Date        string
	Location    string
	Temperature string
	Wind        string
	Error       string
}

type searchPage struct {
	Title     string
	Locations []string
	City      string
	Searched  bool
	Records   []domain.ClimateRecord
}

type trendsPage struct {
	Title  string
	Width  int
	Height int
	Trends []domain.LocationTrend
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}
