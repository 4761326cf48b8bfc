// Package desktop shows notifications through the freedesktop notification
// service on the D-Bus session bus.
package desktop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	notifyCall = busName + ".Notify"
)

// caller is the subset of dbus.BusObject used to send notifications.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Notifier implements pipeline.Notifier over D-Bus.
type Notifier struct {
	conn   *dbus.Conn
	obj    caller
	logger *slog.Logger
}

// NewNotifier connects to the session bus.
func NewNotifier(logger *slog.Logger) (*Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connect session bus: %w", domain.ErrNotify, err)
	}
	return &Notifier{
		conn:   conn,
		obj:    conn.Object(busName, dbus.ObjectPath(objectPath)),
		logger: logger,
	}, nil
}

// Show sends one Notify call. Timeout zero means the notification stays
// until dismissed.
func (n *Notifier) Show(ctx context.Context, note domain.Notification) error {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(note.Urgency)),
	}

	call := n.obj.CallWithContext(ctx, notifyCall, 0,
		note.AppName,
		uint32(0),
		note.Icon,
		note.Summary,
		note.Body,
		[]string{},
		hints,
		int32(note.Timeout.Milliseconds()),
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify reply: %w", err)
	}
	n.logger.Debug("desktop notification shown", "notification_id", id, "alert_id", note.Alert.ID)
	return nil
}

// Close releases the session bus connection.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
