package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChangeType names the write that produced a ChangeEvent.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// RecordPayload is the serialized form of a ClimateRecord.
type RecordPayload struct {
	ID          int64   `json:"id,omitempty"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Wind        float64 `json:"wind"`
}

// Payload converts the record into its serialized form.
func (r ClimateRecord) Payload() RecordPayload {
	return RecordPayload{
		ID:          r.id,
		Date:        r.date,
		Location:    r.location,
		Temperature: r.temperature,
		Wind:        r.wind,
	}
}

// ChangeEvent describes a committed write to the climate_data table.
type ChangeEvent struct {
	EventID    string         `json:"event_id"`
	Type       ChangeType     `json:"type"`
	RecordID   int64          `json:"record_id,omitempty"` // 0 for inserts
	Record     *RecordPayload `json:"record,omitempty"`    // nil for deletes
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewRecordChange builds a created or updated event for record.
func NewRecordChange(t ChangeType, record ClimateRecord) ChangeEvent {
	p := record.Payload()
	return ChangeEvent{
		EventID:    uuid.NewString(),
		Type:       t,
		RecordID:   record.id,
		Record:     &p,
		OccurredAt: clock.Now().UTC(),
	}
}

// NewDeleteChange builds a deleted event for id.
func NewDeleteChange(id int64) ChangeEvent {
	return ChangeEvent{
		EventID:    uuid.NewString(),
		Type:       ChangeDeleted,
		RecordID:   id,
		OccurredAt: clock.Now().UTC(),
	}
}

// ChangePublisher delivers change events to downstream consumers.
type ChangePublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}
