package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Accepted ranges for measured values. Bounds are inclusive.
const (
	MinTemperature = -100.0
	MaxTemperature = 100.0
	MinWind        = 0.0
	MaxWind        = 200.0
)

// datePattern matches yyyy-MM-dd by shape only, e.g. "2024-13-99" passes.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	msgInvalidDate        = "Invalid date format. Expected yyyy-MM-dd."
	msgInvalidLocation    = "Invalid location. Location cannot be empty or null."
	msgInvalidTemperature = fmt.Sprintf("Invalid temperature. Must be between %s and %s degrees.",
		FormatDecimal(MinTemperature), FormatDecimal(MaxTemperature))
	msgInvalidWind = fmt.Sprintf("Invalid wind speed. Must be between %s and %s km/h.",
		FormatDecimal(MinWind), FormatDecimal(MaxWind))
)

// ClimateRecord is one observation: a date, a location, a temperature in
// degrees and a wind speed in km/h. An ID of 0 means the record has not been
// persisted yet.
//
// Fields are only reachable through setters, each of which validates its own
// field and leaves it untouched on failure.
type ClimateRecord struct {
	id          int64
	date        string
	location    string
	temperature float64
	wind        float64
}

// NewEmptyClimateRecord returns a record with every field unset.
func NewEmptyClimateRecord() ClimateRecord {
	return ClimateRecord{}
}

// NewClimateRecordID returns a record that carries only an identifier.
func NewClimateRecordID(id int64) ClimateRecord {
	return ClimateRecord{id: id}
}

// NewClimateRecord builds an unsaved record. Fields are validated in the order
// date, location, temperature, wind and the first violation is returned.
func NewClimateRecord(date, location string, temperature, wind float64) (ClimateRecord, error) {
	return NewClimateRecordWithID(0, date, location, temperature, wind)
}

// NewClimateRecordWithID builds a record with a known identifier, validating
// like NewClimateRecord. On error the returned record may hold the fields set
// before the failing one and must not be used.
func NewClimateRecordWithID(id int64, date, location string, temperature, wind float64) (ClimateRecord, error) {
	r := ClimateRecord{id: id}
	if err := r.SetDate(date); err != nil {
		return r, err
	}
	if err := r.SetLocation(location); err != nil {
		return r, err
	}
	if err := r.SetTemperature(temperature); err != nil {
		return r, err
	}
	if err := r.SetWind(wind); err != nil {
		return r, err
	}
	return r, nil
}

// ID returns the identifier, 0 for an unsaved record.
func (r ClimateRecord) ID() int64 { return r.id }

// Date returns the observation date as yyyy-MM-dd.
func (r ClimateRecord) Date() string { return r.date }

// Location returns the place the observation was made.
func (r ClimateRecord) Location() string { return r.location }

// Temperature returns the temperature in degrees.
func (r ClimateRecord) Temperature() float64 { return r.temperature }

// Wind returns the wind speed in km/h.
func (r ClimateRecord) Wind() float64 { return r.wind }

// SetID assigns the identifier. Any value is accepted.
func (r *ClimateRecord) SetID(id int64) {
	r.id = id
}

// SetDate accepts any string shaped like yyyy-MM-dd. The calendar is not checked.
func (r *ClimateRecord) SetDate(date string) error {
	if !datePattern.MatchString(date) {
		return NewValidationError(msgInvalidDate)
	}
	r.date = date
	return nil
}

// SetLocation rejects empty and whitespace-only names. The value is stored untrimmed.
func (r *ClimateRecord) SetLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return NewValidationError(msgInvalidLocation)
	}
	r.location = location
	return nil
}

// SetTemperature accepts values in [MinTemperature, MaxTemperature]. NaN fails
// the range check.
func (r *ClimateRecord) SetTemperature(temperature float64) error {
	if !inRange(temperature, MinTemperature, MaxTemperature) {
		return NewValidationError(msgInvalidTemperature)
	}
	r.temperature = temperature
	return nil
}

// SetWind accepts values in [MinWind, MaxWind]. NaN fails the range check.
func (r *ClimateRecord) SetWind(wind float64) error {
	if !inRange(wind, MinWind, MaxWind) {
		return NewValidationError(msgInvalidWind)
	}
	r.wind = wind
	return nil
}

// Equal reports whether both records hold the same values in every field.
func (r ClimateRecord) Equal(other ClimateRecord) bool {
	return r == other
}

func (r ClimateRecord) String() string {
	return fmt.Sprintf("ClimateRecord{id=%d, date='%s', location='%s', temperature=%s, wind=%s}",
		r.id, r.date, r.location, FormatDecimal(r.temperature), FormatDecimal(r.wind))
}

// FormatDecimal renders v in its shortest form, keeping a trailing ".0" on
// whole numbers (12 -> "12.0", 12.5 -> "12.5").
func FormatDecimal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// inRange is false for NaN because every comparison with NaN is false.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
