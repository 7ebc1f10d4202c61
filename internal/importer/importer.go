package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
	"github.com/couchcryptid/climate-dashboard/internal/observability"
)

// DefaultBatchSize is the number of rows read from the source per cycle.
const DefaultBatchSize = 100

// BatchExtractor reads up to batchSize rows; an empty batch ends the import.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]Row, error)
}

// Summary counts what happened to the rows of one import.
type Summary struct {
	Read     int
	Inserted int
	Rejected int
}

// Importer loads rows from a source into the repository. Rows that do not
// form a valid record are logged and skipped; storage failures stop the run.
type Importer struct {
	source    BatchExtractor
	repo      domain.Repository
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// New creates an Importer. A non-positive batchSize selects DefaultBatchSize.
// metrics may be nil.
func New(source BatchExtractor, repo domain.Repository, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		source:    source,
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Run imports until the source is exhausted, the context is cancelled, or the
// repository fails. The summary covers the rows handled before any error.
func (im *Importer) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	im.logger.Info("import started", "batch_size", im.batchSize)

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		batch, err := im.source.ExtractBatch(ctx, im.batchSize)
		if err != nil {
			return summary, err
		}
		if len(batch) == 0 {
			break
		}

		for _, row := range batch {
			summary.Read++
			if err := im.load(ctx, row, &summary); err != nil {
				return summary, err
			}
		}
	}

	im.logger.Info("import finished",
		"read", summary.Read,
		"inserted", summary.Inserted,
		"rejected", summary.Rejected,
	)
	return summary, nil
}

// load transforms and inserts one row. Only repository errors are returned.
func (im *Importer) load(ctx context.Context, row Row, summary *Summary) error {
	record, err := Transform(row)
	if err != nil {
		im.reject(row, err, summary)
		return nil
	}

	ok, err := im.repo.Insert(ctx, record)
	if err != nil {
		return fmt.Errorf("line %d: %w", row.Line, err)
	}
	if !ok {
		im.reject(row, errors.New("insert affected no rows"), summary)
		return nil
	}

	summary.Inserted++
	im.count("inserted")
	return nil
}

func (im *Importer) reject(row Row, err error, summary *Summary) {
	summary.Rejected++
	im.count("rejected")
	im.logger.Warn("row rejected", "line", row.Line, "error", err)
}

func (im *Importer) count(outcome string) {
	if im.metrics != nil {
		im.metrics.ImportRows.WithLabelValues(outcome).Inc()
	}
}

// Transform converts a row into a validated record.
func Transform(row Row) (domain.ClimateRecord, error) {
	if row.Err != nil {
		return domain.ClimateRecord{}, row.Err
	}

	temperature, err := strconv.ParseFloat(strings.TrimSpace(row.Temperature), 64)
	if err != nil {
		return domain.ClimateRecord{}, fmt.Errorf("temperature %q is not a number", row.Temperature)
	}
	wind, err := strconv.ParseFloat(strings.TrimSpace(row.Wind), 64)
	if err != nil {
		return domain.ClimateRecord{}, fmt.Errorf("wind %q is not a number", row.Wind)
	}

	return domain.NewClimateRecord(row.Date, row.Location, temperature, wind)
}
