package domain

import "context"

// Repository persists climate records in the climate_data table.
//
// Write operations report whether a row was affected; a false result with a
// nil error means the statement ran but matched nothing. Driver failures come
// back as *StorageError. Reads that hydrate an invalid stored row return the
// *ValidationError raised by the record constructor.
type Repository interface {
	Insert(ctx context.Context, record ClimateRecord) (bool, error)
	Update(ctx context.Context, record ClimateRecord) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// GetByID returns found=false and a nil error when no row has the id.
	GetByID(ctx context.Context, id int64) (record ClimateRecord, found bool, err error)

	// ListAll returns every record; the slice is empty, never nil, when the
	// table has no rows.
	ListAll(ctx context.Context) ([]ClimateRecord, error)

	// FindByCity matches location with SQL LIKE. The city is bound exactly as
	// given, so callers add wildcards themselves.
	FindByCity(ctx context.Context, city string) ([]ClimateRecord, error)
}
