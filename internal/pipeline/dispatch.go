package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/couchcryptid/storm-alertd/internal/config"
	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/couchcryptid/storm-alertd/internal/observability"
)

// AppName is the application name shown by the notification server.
const AppName = "National Weather Service Daemon"

// DefaultIconDir holds the themed status icons named by domain.IconFor.
const DefaultIconDir = "/usr/share/icons/Papirus-Dark/symbolic/status"

// Notifier displays a rendered notification.
type Notifier interface {
	Show(ctx context.Context, n domain.Notification) error
}

// Dispatcher renders alerts into notifications and hands them to a Notifier.
type Dispatcher struct {
	notifier Notifier
	settings *config.Settings
	location string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewDispatcher creates a Dispatcher. location is an optional label for the
// monitored point appended to summaries; pass "" to omit it.
func NewDispatcher(n Notifier, settings *config.Settings, location string, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{
		notifier: n,
		settings: settings,
		location: location,
		logger:   logger,
		metrics:  metrics,
	}
}

// Render builds the notification request for an alert.
func (d *Dispatcher) Render(a domain.Alert) domain.Notification {
	summary := fmt.Sprintf("%s Weather Alert", a.Severity)
	if d.location != "" {
		summary = fmt.Sprintf("%s for %s", summary, d.location)
	}

	body := a.Headline
	if d.settings.DetailedNotification {
		body = a.Description
	}

	icon := d.settings.NotificationIconPath
	if icon == "" {
		icon = filepath.Join(DefaultIconDir, domain.IconFor(a.Event))
	}

	return domain.Notification{
		Alert:   a,
		Summary: summary,
		Body:    body,
		Icon:    icon,
		AppName: AppName,
		Urgency: domain.UrgencyFor(a.Severity),
		Timeout: domain.TimeoutFor(a.Severity),
	}
}

// Dispatch renders the alert and sends it to the notifier. Sink failures
// are returned wrapped in domain.ErrNotify.
func (d *Dispatcher) Dispatch(ctx context.Context, a domain.Alert) error {
	n := d.Render(a)
	if err := d.notifier.Show(ctx, n); err != nil {
		d.metrics.NotificationFailures.Inc()
		return fmt.Errorf("%w: alert %s: %w", domain.ErrNotify, a.ID, err)
	}
	d.metrics.NotificationsSent.Inc()
	d.logger.Info("notification sent",
		"alert_id", a.ID,
		"event", a.Label(),
		"severity", a.Severity.String(),
		"urgency", n.Urgency.String(),
	)
	return nil
}

// SelfTest dispatches the canonical test alert with the given severity
// exactly as a live alert would be, and returns the alert it sent.
func (d *Dispatcher) SelfTest(ctx context.Context, s domain.Severity) (domain.Alert, error) {
	a := domain.TestAlert(s)
	d.logger.Info("generating test alert", "alert_id", a.ID, "severity", s.String())
	return a, d.Dispatch(ctx, a)
}
