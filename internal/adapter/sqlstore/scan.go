package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
)

// scanRecord maps a SELECT * row onto a ClimateRecord by column name, so the
// physical column order of climate_data does not matter.
func scanRecord(rows *sql.Rows, cols []string) (domain.ClimateRecord, error) {
	var (
		id         int64
		date       any
		location   string
		temp, wind float64
		seen       int
		dest       = make([]any, len(cols))
		ignored    any
	)
	for i, c := range cols {
		switch c {
		case "id":
			dest[i] = &id
		case "date":
			dest[i] = &date
		case "location":
			dest[i] = &location
		case "temp":
			dest[i] = &temp
		case "wind":
			dest[i] = &wind
		default:
			dest[i] = &ignored
			continue
		}
		seen++
	}
	if seen != 5 {
		return domain.ClimateRecord{}, fmt.Errorf("climate_data row has %d of 5 expected columns", seen)
	}
	if err := rows.Scan(dest...); err != nil {
		return domain.ClimateRecord{}, fmt.Errorf("scanning climate_data row: %w", err)
	}

	d, err := dateString(date)
	if err != nil {
		return domain.ClimateRecord{}, err
	}
	return domain.NewClimateRecordWithID(id, d, location, temp, wind)
}

// dateString normalizes the driver's representation of a DATE column.
// MySQL without parseTime yields []byte, SQLite yields string, and either may
// yield time.Time depending on driver options.
func dateString(v any) (string, error) {
	switch d := v.(type) {
	case string:
		return d, nil
	case []byte:
		return string(d), nil
	case time.Time:
		return d.Format(time.DateOnly), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected date column type %T", v)
	}
}
