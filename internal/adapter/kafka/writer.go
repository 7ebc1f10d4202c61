package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/climate-dashboard/internal/config"
	"github.com/couchcryptid/climate-dashboard/internal/domain"
)

// Writer produces change events to a Kafka topic.
// It implements domain.ChangePublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured changes topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	// Events are written one at a time from request handlers, so a batch is
	// a single message and must not wait for the default 1s flush timer.
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaChangesTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 2 * time.Second,
		MaxAttempts:  3,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one change event and writes it synchronously. Events for
// the same record share a key and so land on the same partition in order.
func (w *Writer) Publish(ctx context.Context, event domain.ChangeEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write change event: %w", err)
	}
	w.logger.Debug("change event published", "event_id", event.EventID, "type", event.Type, "record_id", event.RecordID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ChangeEvent into a Kafka message.
func serializeToMessage(event domain.ChangeEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize change event: %w", err)
	}
	return kafkago.Message{
		Key:   messageKey(event),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "change_type", Value: []byte(event.Type)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}

// messageKey is the record id, or the event id for inserts whose record id is
// not known yet.
func messageKey(event domain.ChangeEvent) []byte {
	if event.RecordID != 0 {
		return []byte(strconv.FormatInt(event.RecordID, 10))
	}
	return []byte(event.EventID)
}
