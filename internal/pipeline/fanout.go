package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/couchcryptid/storm-alertd/internal/observability"
)

// FanOut shows each notification on every sink in order. A failing sink
// does not stop the remaining ones; all failures are joined.
type FanOut []Notifier

func (f FanOut) Show(ctx context.Context, n domain.Notification) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Show(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Mirror wraps a sink that copies alerts elsewhere without being part of
// delivery. Its failures are logged and counted, never returned.
type Mirror struct {
	sink    Notifier
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewMirror(sink Notifier, logger *slog.Logger, metrics *observability.Metrics) *Mirror {
	return &Mirror{sink: sink, logger: logger, metrics: metrics}
}

func (m *Mirror) Show(ctx context.Context, n domain.Notification) error {
	if err := m.sink.Show(ctx, n); err != nil {
		m.metrics.MirrorFailures.Inc()
		m.logger.Warn("alert mirror failed", "alert_id", n.Alert.ID, "error", err)
	}
	return nil
}
