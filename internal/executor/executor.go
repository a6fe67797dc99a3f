// Package executor spawns external commands with argument vectors. File
// names and other user-controlled strings are never interpolated into a
// shell command line.
package executor

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/TheronStein/fuse-archive.yazi/internal/log"
)

// Result carries the combined output and exit code of a finished command.
type Result struct {
	Output   []byte
	ExitCode int
}

// Runner is the Run function signature, injectable for tests.
type Runner func(name string, args []string, dir string) (Result, error)

// SpawnError means the process could not be started at all (binary
// missing, permission denied).
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means the process ran but exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Output []byte
}

func (e *ExitError) Error() string {
	out := strings.TrimSpace(string(e.Output))
	if out == "" {
		return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Name, e.Code, out)
}

// Run executes name with args, optionally in dir, and captures combined
// stdout/stderr. The returned error is a *SpawnError or *ExitError; the
// caller decides whether either is fatal to the enclosing operation.
func Run(name string, args []string, dir string) (Result, error) {
	log.Debug("running command", "name", name, "args", strings.Join(args, " "), "dir", dir)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return Result{Output: output, ExitCode: code},
				&ExitError{Name: name, Code: code, Output: output}
		}
		return Result{Output: output, ExitCode: -1}, &SpawnError{Name: name, Err: err}
	}

	return Result{Output: output}, nil
}
