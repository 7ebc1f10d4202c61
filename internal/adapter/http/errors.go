package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
)

// ParseError reports a request parameter that could not be converted to the
// type its field needs. It is raised before any record validation runs.
type ParseError struct {
	Field string
	Kind  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s must be a valid %s: %s", e.Field, e.Kind, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParseError{Field: "ID", Kind: "integer", Value: raw, Err: err}
	}
	return id, nil
}

func parseNumber(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ParseError{Field: field, Kind: "number", Value: raw, Err: err}
	}
	return v, nil
}

const genericErrorMessage = "Something went wrong while handling your request. Please try again later."

// handleError renders an error page for anything a handler returned. Form
// validation failures never reach here; handlers re-render the form themselves.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		parseErr      *ParseError
		validationErr *domain.ValidationError
		httpErr       *echo.HTTPError
	)
	switch {
	case errors.As(err, &parseErr):
		s.renderError(c, http.StatusBadRequest, "Invalid Request", parseErr.Error())
	case errors.As(err, &validationErr):
		// A stored row that no longer passes validation.
		s.logger.Error("invalid stored record", "path", c.Request().URL.Path, "error", err)
		s.renderError(c, http.StatusInternalServerError, "Invalid Stored Record", validationErr.Message)
	case errors.As(err, &httpErr):
		s.renderError(c, httpErr.Code, http.StatusText(httpErr.Code), fmt.Sprint(httpErr.Message))
	default:
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
		s.renderError(c, http.StatusInternalServerError, "Unexpected Error", genericErrorMessage)
	}
}

func (s *Server) renderError(c echo.Context, status int, title, message string) {
	page := errorPage{Title: title, Status: status, Message: message}
	if err := c.Render(status, "error.html", page); err != nil {
		s.logger.Error("render error page", "error", err)
		_ = c.String(status, message)
	}
}
