package host

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyInterface = "org.freedesktop.Notifications"
)

// DesktopNotifier wraps a Host and reroutes notifications to the session
// bus desktop notification service. Navigation still goes to the inner
// host. Useful when yazi's own notify overlay is hidden, for instance
// behind a fullscreen preview.
type DesktopNotifier struct {
	Host
	conn *dbus.Conn
}

// NewDesktopNotifier connects to the session bus and decorates inner.
func NewDesktopNotifier(inner Host) (*DesktopNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &DesktopNotifier{Host: inner, conn: conn}, nil
}

func (d *DesktopNotifier) Notify(level Level, msg string, timeout time.Duration) error {
	obj := d.conn.Object(notifyService, notifyPath)

	call := obj.Call(notifyInterface+".Notify", 0,
		"fuse-archive-yazi", // app name
		uint32(0),           // no notification to replace
		iconFor(level),
		notifyTitle,
		msg,
		[]string{},                   // no actions
		map[string]dbus.Variant{},    // no hints
		int32(timeout.Milliseconds()),
	)
	if call.Err != nil {
		return fmt.Errorf("send desktop notification: %w", call.Err)
	}
	return nil
}

func iconFor(level Level) string {
	switch level {
	case LevelWarn:
		return "dialog-warning"
	case LevelError:
		return "dialog-error"
	default:
		return "dialog-information"
	}
}
