// Package domain models climate observations recorded through the dashboard.
//
// # Records
//
// A [ClimateRecord] is one observation for a named location on a calendar
// date. Every field is validated on construction and on each setter call:
//
//	date:        "yyyy-MM-dd" by shape only; "2024-13-99" is accepted
//	location:    any text that is not blank after trimming
//	temperature: degrees, -100.0 to 100.0 inclusive
//	wind:        km/h, 0.0 to 200.0 inclusive
//
// NaN fails both numeric ranges. Multi-field constructors validate in the
// order above and stop at the first violation.
//
// # Errors
//
// Two error kinds cross the repository boundary:
//
//	*ValidationError  bad field value; its message is user facing
//	*StorageError     driver or connection failure; fixed summary + cause
//
// Use errors.Is with [ErrInvalidArguments] or [ErrStorage] to classify.
// A lookup that finds nothing is not an error: [Repository.GetByID] reports
// found=false instead.
//
// # Persistence
//
// Records live in a single table:
//
//	climate_data(id, date, location, temp, wind)
//
// Rows read back are rebuilt through [NewClimateRecordWithID], so a stored
// row that violates the rules above fails the read with a ValidationError.
package domain
