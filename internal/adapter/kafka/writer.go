package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-alertd/internal/config"
	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the mirror needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer mirrors dispatched alerts to a Kafka topic.
// It implements pipeline.Notifier.
type Writer struct {
	writer messageWriter
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured alert topic.
func NewWriter(env *config.Env, clock clockwork.Clock, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(env.KafkaBrokers...),
		Topic:                  env.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, clock: clock, logger: logger}
}

// Show publishes one record for the notification, keyed by alert ID so
// every record for an alert lands on the same partition.
func (w *Writer) Show(ctx context.Context, n domain.Notification) error {
	msg, err := serializeToMessage(n, w.clock.Now())
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish alert %s: %w", n.Alert.ID, err)
	}
	w.logger.Debug("alert mirrored to kafka", "alert_id", n.Alert.ID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// alertRecord is the JSON value published for each dispatched alert.
type alertRecord struct {
	ID          string    `json:"id"`
	Event       string    `json:"event"`
	EventName   string    `json:"event_name,omitempty"`
	Severity    string    `json:"severity"`
	Headline    string    `json:"headline,omitempty"`
	Description string    `json:"description,omitempty"`
	AreaDesc    string    `json:"area_desc,omitempty"`
	Sent        time.Time `json:"sent,omitzero"`
	Expires     time.Time `json:"expires,omitzero"`
	Summary     string    `json:"summary"`
	Urgency     string    `json:"urgency"`
	TimeoutMS   int64     `json:"timeout_ms"`
	PublishedAt time.Time `json:"published_at"`
}

// serializeToMessage marshals a notification into a Kafka message.
func serializeToMessage(n domain.Notification, now time.Time) (kafkago.Message, error) {
	a := n.Alert
	data, err := json.Marshal(alertRecord{
		ID:          a.ID,
		Event:       a.Event.String(),
		EventName:   a.EventName,
		Severity:    a.Severity.String(),
		Headline:    a.Headline,
		Description: a.Description,
		AreaDesc:    a.AreaDesc,
		Sent:        a.Sent,
		Expires:     a.Expires,
		Summary:     n.Summary,
		Urgency:     n.Urgency.String(),
		TimeoutMS:   n.Timeout.Milliseconds(),
		PublishedAt: now.UTC(),
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(a.Event.String())},
			{Key: "severity", Value: []byte(a.Severity.String())},
		},
	}, nil
}
