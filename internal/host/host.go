// Package host is the surface the coordinator drives the file manager
// through: navigation commands and user-visible notifications.
package host

import "time"

// Level is the severity of a notification.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Host issues navigation and notification commands against the user's
// running file manager.
type Host interface {
	// Enter performs a plain directory-enter on the hovered entry.
	Enter() error
	// Leave navigates to the parent directory.
	Leave() error
	// NavigateTo changes the current directory to path.
	NavigateTo(path string) error
	// OpenHovered opens the hovered entry with its associated opener.
	OpenHovered() error
	// Notify posts a message with a severity and display duration.
	Notify(level Level, msg string, timeout time.Duration) error
}
