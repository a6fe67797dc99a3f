package host

import (
	"fmt"
	"strconv"
	"time"

	"github.com/TheronStein/fuse-archive.yazi/internal/executor"
)

const notifyTitle = "fuse-archive"

// Yazi drives a running yazi instance through `ya emit-to`. Commands are
// spawned with discrete argument vectors; paths are never passed through
// a shell.
type Yazi struct {
	id  string
	run executor.Runner
}

// NewYazi creates a host for the yazi instance with the given DDS id.
// An empty id targets the ambient instance via `ya emit`.
func NewYazi(id string) *Yazi {
	return &Yazi{id: id, run: executor.Run}
}

func (y *Yazi) emit(args ...string) error {
	cmdArgs := []string{"emit"}
	if y.id != "" {
		cmdArgs = []string{"emit-to", y.id}
	}
	cmdArgs = append(cmdArgs, args...)

	if _, err := y.run("ya", cmdArgs, ""); err != nil {
		return fmt.Errorf("ya %s: %w", args[0], err)
	}
	return nil
}

func (y *Yazi) Enter() error {
	return y.emit("enter")
}

func (y *Yazi) Leave() error {
	return y.emit("leave")
}

func (y *Yazi) NavigateTo(path string) error {
	return y.emit("cd", path)
}

func (y *Yazi) OpenHovered() error {
	return y.emit("open")
}

func (y *Yazi) Notify(level Level, msg string, timeout time.Duration) error {
	return y.emit("notify",
		"--title", notifyTitle,
		"--content", msg,
		"--level", string(level),
		"--timeout", strconv.FormatFloat(timeout.Seconds(), 'f', -1, 64),
	)
}
