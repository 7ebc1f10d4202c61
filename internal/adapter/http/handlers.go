package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
)

// Locations offered by the record form and the city search.
var Locations = []string{"Victoria", "Nanaimo", "Port Alberni", "Duncan", "Tofino"}

// Chart dimensions for the trends page, in SVG user units.
const (
	trendChartWidth  = 600
	trendChartHeight = 200
)

// Every dashboard route answers GET and POST alike.
func (s *Server) registerDashboardRoutes() {
	getOrPost := []string{http.MethodGet, http.MethodPost}

	s.echo.Match(getOrPost, "/", s.handleList)
	s.echo.Match(getOrPost, "/list", s.handleList)
	s.echo.Match(getOrPost, "/new", s.handleNewForm)
	s.echo.Match(getOrPost, "/insert", s.handleInsert)
	s.echo.Match(getOrPost, "/edit", s.handleEditForm)
	s.echo.Match(getOrPost, "/update", s.handleUpdate)
	s.echo.Match(getOrPost, "/delete", s.handleDelete)
	s.echo.Match(getOrPost, "/search", s.handleSearch)
	s.echo.Match(getOrPost, "/temperatureTrends", s.handleTrends)

	// Unknown paths fall back to the record list.
	s.echo.RouteNotFound("/*", s.handleList)
}

func (s *Server) handleList(c echo.Context) error {
	records, err := s.repo.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "list.html", listPage{Title: "Climate Records", Records: records})
}

func (s *Server) handleNewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "form.html", formPage{
		Title:     "Add Climate Record",
		Action:    "insert",
		Locations: Locations,
	})
}

func (s *Server) handleInsert(c echo.Context) error {
	record, err := recordFromForm(c, 0)
	if err != nil {
		return s.formError(c, err, "Add Climate Record", "insert", 0)
	}

	ok, err := s.repo.Insert(c.Request().Context(), record)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn("insert affected no rows", "record", record.String())
	}
	return c.Redirect(http.StatusFound, "/list")
}

func (s *Server) handleEditForm(c echo.Context) error {
	id, err := parseID(c.FormValue("id"))
	if err != nil {
		return err
	}

	record, found, err := s.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "Climate record not found.")
	}

	return c.Render(http.StatusOK, "form.html", formPage{
		Title:       "Edit Climate Record",
		Action:      "update",
		Locations:   Locations,
		ID:          record.ID(),
		Date:        record.Date(),
		Location:    record.Location(),
		Temperature: domain.FormatDecimal(record.Temperature()),
		Wind:        domain.FormatDecimal(record.Wind()),
	})
}

func (s *Server) handleUpdate(c echo.Context) error {
	id, err := parseID(c.FormValue("id"))
	if err != nil {
		return err
	}

	record, err := recordFromForm(c, id)
	if err != nil {
		return s.formError(c, err, "Edit Climate Record", "update", id)
	}

	ok, err := s.repo.Update(c.Request().Context(), record)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn("update affected no rows", "id", id)
	}
	return c.Redirect(http.StatusFound, "/list")
}

func (s *Server) handleDelete(c echo.Context) error {
	id, err := parseID(c.FormValue("id"))
	if err != nil {
		return err
	}

	ok, err := s.repo.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn("delete affected no rows", "id", id)
	}
	return c.Redirect(http.StatusFound, "/list")
}

func (s *Server) handleSearch(c echo.Context) error {
	page := searchPage{
		Title:     "Search by City",
		Locations: Locations,
		City:      c.FormValue("city"),
		Records:   []domain.ClimateRecord{},
	}

	if page.City != "" {
		records, err := s.repo.FindByCity(c.Request().Context(), page.City)
		if err != nil {
			return err
		}
		page.Searched = true
		page.Records = records
	}
	return c.Render(http.StatusOK, "search.html", page)
}

func (s *Server) handleTrends(c echo.Context) error {
	records, err := s.repo.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "trends.html", trendsPage{
		Title:  "Temperature Trends",
		Width:  trendChartWidth,
		Height: trendChartHeight,
		Trends: domain.BuildTrends(records),
	})
}

// recordFromForm reads the record fields from query or form values. Numbers
// are parsed before the record is validated, so a ParseError wins over a
// ValidationError.
func recordFromForm(c echo.Context, id int64) (domain.ClimateRecord, error) {
	temperature, err := parseNumber("Temperature", c.FormValue("temperature"))
	if err != nil {
		return domain.ClimateRecord{}, err
	}
	wind, err := parseNumber("Wind", c.FormValue("wind"))
	if err != nil {
		return domain.ClimateRecord{}, err
	}
	return domain.NewClimateRecordWithID(id, c.FormValue("date"), c.FormValue("location"), temperature, wind)
}

// formError re-renders the form with the submitted values when err is a
// validation failure. Any other error goes to the error handler.
func (s *Server) formError(c echo.Context, err error, title, action string, id int64) error {
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}
	return c.Render(http.StatusBadRequest, "form.html", formPage{
		Title:       title,
		Action:      action,
		Locations:   Locations,
		ID:          id,
		Date:        c.FormValue("date"),
		Location:    c.FormValue("location"),
		Temperature: c.FormValue("temperature"),
		Wind:        c.FormValue("wind"),
		Error:       validationErr.Message,
	})
}
