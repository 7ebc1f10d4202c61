// Package sqlstore implements domain.Repository over database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
	"github.com/couchcryptid/climate-dashboard/internal/observability"
)

const (
	insertSQL     = "INSERT INTO climate_data (date, location, temp, wind) VALUES (?, ?, ?, ?)"
	updateSQL     = "UPDATE climate_data SET date = ?, location = ?, temp = ?, wind = ? WHERE id = ?"
	deleteSQL     = "DELETE FROM climate_data WHERE id = ?"
	selectByIDSQL = "SELECT * FROM climate_data WHERE id = ?"
	selectAllSQL  = "SELECT * FROM climate_data"
	selectCitySQL = "SELECT * FROM climate_data WHERE location LIKE ?"
)

// Failure summaries carried by *domain.StorageError.
const (
	msgInsertFailed = "Failed to insert climate record"
	msgUpdateFailed = "Failed to update climate record"
	msgDeleteFailed = "Failed to delete climate record"
	msgGetFailed    = "Failed to retrieve climate record"
	msgListFailed   = "Failed to retrieve climate records"
	msgCityFailed   = "Failed to retrieve climate records based on city"
)

// ConnectionProvider hands out the shared database handle.
type ConnectionProvider interface {
	Conn(ctx context.Context) (*sql.DB, error)
}

// Store runs one parameterized statement per call against climate_data.
// Statements auto-commit; there are no explicit transactions.
type Store struct {
	conns   ConnectionProvider
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Store. metrics may be nil.
func New(conns ConnectionProvider, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{conns: conns, logger: logger, metrics: metrics}
}

func (s *Store) Insert(ctx context.Context, record domain.ClimateRecord) (ok bool, err error) {
	defer s.observe("insert", time.Now(), &err)

	ok, err = s.exec(ctx, insertSQL,
		record.Date(), record.Location(), record.Temperature(), record.Wind())
	if err != nil {
		s.logger.Error("error inserting record", "record", record.String(), "error", err)
		return false, domain.NewStorageError(msgInsertFailed, err)
	}
	s.logger.Debug("record inserted", "record", record.String(), "inserted", ok)
	return ok, nil
}

func (s *Store) Update(ctx context.Context, record domain.ClimateRecord) (ok bool, err error) {
	defer s.observe("update", time.Now(), &err)

	ok, err = s.exec(ctx, updateSQL,
		record.Date(), record.Location(), record.Temperature(), record.Wind(), record.ID())
	if err != nil {
		s.logger.Error("error updating record", "record", record.String(), "error", err)
		return false, domain.NewStorageError(msgUpdateFailed, err)
	}
	s.logger.Debug("record updated", "record", record.String(), "updated", ok)
	return ok, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (ok bool, err error) {
	defer s.observe("delete", time.Now(), &err)

	ok, err = s.exec(ctx, deleteSQL, id)
	if err != nil {
		s.logger.Error("error deleting record", "id", id, "error", err)
		return false, domain.NewStorageError(msgDeleteFailed, err)
	}
	s.logger.Debug("record deleted", "id", id, "deleted", ok)
	return ok, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (record domain.ClimateRecord, found bool, err error) {
	defer s.observe("get", time.Now(), &err)

	records, err := s.query(ctx, msgGetFailed, selectByIDSQL, id)
	if err != nil {
		s.logger.Error("error fetching record", "id", id, "error", err)
		return domain.ClimateRecord{}, false, err
	}
	if len(records) == 0 {
		s.logger.Warn("no record found", "id", id)
		return domain.ClimateRecord{}, false, nil
	}
	return records[0], true, nil
}

func (s *Store) ListAll(ctx context.Context) (records []domain.ClimateRecord, err error) {
	defer s.observe("list", time.Now(), &err)

	records, err = s.query(ctx, msgListFailed, selectAllSQL)
	if err != nil {
		s.logger.Error("error listing records", "error", err)
		return nil, err
	}
	s.logger.Debug("records listed", "count", len(records))
	return records, nil
}

func (s *Store) FindByCity(ctx context.Context, city string) (records []domain.ClimateRecord, err error) {
	defer s.observe("find_by_city", time.Now(), &err)

	records, err = s.query(ctx, msgCityFailed, selectCitySQL, city)
	if err != nil {
		s.logger.Error("error listing records by city", "city", city, "error", err)
		return nil, err
	}
	s.logger.Debug("records listed by city", "city", city, "count", len(records))
	return records, nil
}

// exec runs a write statement and reports whether any row was affected.
func (s *Store) exec(ctx context.Context, query string, args ...any) (bool, error) {
	db, err := s.conns.Conn(ctx)
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n > 0, nil
}

// query runs a SELECT and hydrates every row. Driver failures are wrapped in
// a StorageError with failMsg; hydration failures pass through unchanged.
func (s *Store) query(ctx context.Context, failMsg, query string, args ...any) ([]domain.ClimateRecord, error) {
	db, err := s.conns.Conn(ctx)
	if err != nil {
		return nil, domain.NewStorageError(failMsg, err)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageError(failMsg, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, domain.NewStorageError(failMsg, err)
	}

	records := []domain.ClimateRecord{}
	for rows.Next() {
		r, err := scanRecord(rows, cols)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return nil, err
			}
			return nil, domain.NewStorageError(failMsg, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(failMsg, err)
	}
	return records, nil
}

// observe records the outcome and latency of one repository call.
func (s *Store) observe(op string, start time.Time, errp *error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RepositoryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	s.metrics.RepositoryOps.WithLabelValues(op, outcome(*errp)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidArguments):
		return "validation_error"
	default:
		return "storage_error"
	}
}
