// Package changefeed publishes a change event after every committed write.
package changefeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
	"github.com/couchcryptid/climate-dashboard/internal/observability"
)

// DefaultPublishTimeout bounds how long a write waits for its change event.
const DefaultPublishTimeout = 2 * time.Second

// Repository wraps a domain.Repository and publishes a ChangeEvent for each
// write that affected a row. Reads pass straight through.
//
// Publishing happens after the statement has committed, so a publish failure
// is logged and counted but never returned to the caller.
type Repository struct {
	domain.Repository
	publisher domain.ChangePublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	timeout   time.Duration
}

// NewRepository creates the decorator. metrics may be nil.
func NewRepository(inner domain.Repository, publisher domain.ChangePublisher, logger *slog.Logger, metrics *observability.Metrics) *Repository {
	return &Repository{
		Repository: inner,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
		timeout:    DefaultPublishTimeout,
	}
}

// WithPublishTimeout replaces DefaultPublishTimeout. Non-positive values are ignored.
func (r *Repository) WithPublishTimeout(d time.Duration) *Repository {
	if d > 0 {
		r.timeout = d
	}
	return r
}

func (r *Repository) Insert(ctx context.Context, record domain.ClimateRecord) (bool, error) {
	ok, err := r.Repository.Insert(ctx, record)
	if err == nil && ok {
		r.publish(ctx, domain.NewRecordChange(domain.ChangeCreated, record))
	}
	return ok, err
}

func (r *Repository) Update(ctx context.Context, record domain.ClimateRecord) (bool, error) {
	ok, err := r.Repository.Update(ctx, record)
	if err == nil && ok {
		r.publish(ctx, domain.NewRecordChange(domain.ChangeUpdated, record))
	}
	return ok, err
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := r.Repository.Delete(ctx, id)
	if err == nil && ok {
		r.publish(ctx, domain.NewDeleteChange(id))
	}
	return ok, err
}

func (r *Repository) publish(ctx context.Context, event domain.ChangeEvent) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.publisher.Publish(ctx, event)
	if r.metrics != nil {
		result := "success"
		if err != nil {
			result = "error"
		}
		r.metrics.ChangesPublished.WithLabelValues(string(event.Type), result).Inc()
	}
	if err != nil {
		r.logger.Warn("change event not published",
			"event_id", event.EventID,
			"type", event.Type,
			"record_id", event.RecordID,
			"error", err,
		)
	}
}
