// Package server exposes the coordinator over a unix socket. The daemon
// side accepts one JSON request per connection and runs it on its own
// goroutine; the client side sends a single action and reports the
// outcome.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/TheronStein/fuse-archive.yazi/internal/coordinator"
	"github.com/TheronStein/fuse-archive.yazi/internal/host"
	"github.com/TheronStein/fuse-archive.yazi/internal/log"
)

const warnTimeout = 5 * time.Second

// Actions is the coordinator surface the server dispatches to.
type Actions interface {
	Activate(h host.Host, cwd string, hov *coordinator.Hovered) error
	Unmount(h host.Host, cwd string) error
	List(h host.Host) error
	Cleanup(h host.Host) error
}

// HostFactory builds the host surface for a request's yazi instance.
type HostFactory func(yaziID string) host.Host

// Server serves coordinator actions on a unix socket.
type Server struct {
	actions Actions
	hostFor HostFactory

	listener net.Listener
}

func New(actions Actions, hostFor HostFactory) *Server {
	return &Server{actions: actions, hostFor: hostFor}
}

// ListenAndServe listens on socketPath until Close. A stale socket from a
// previous run is removed before listening, and the socket is removed
// again on return.
func (s *Server) ListenAndServe(socketPath string) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return fmt.Errorf("create socket directory: %w", err)
	}

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	s.listener = listener

	defer func() {
		if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove socket on shutdown", "path", socketPath, "error", err)
		}
	}()

	log.Info("listening on socket", "path", socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handle(conn)
	}
}

// Close stops the listener; ListenAndServe returns nil afterwards.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		log.Warn("failed to decode request", "error", err)
		writeResponse(conn, Response{OK: false, Error: "malformed request"})
		return
	}

	log.Debug("handling request", "action", req.Action, "cwd", req.Cwd)

	if err := s.dispatch(req); err != nil {
		writeResponse(conn, Response{OK: false, Error: err.Error()})
		return
	}
	writeResponse(conn, Response{OK: true})
}

func (s *Server) dispatch(req Request) error {
	h := s.hostFor(req.YaziID)

	switch req.Action {
	case "mount":
		var hov *coordinator.Hovered
		if req.Hovered != nil {
			hov = &coordinator.Hovered{
				Name:  req.Hovered.Name,
				Path:  req.Hovered.Path,
				IsDir: req.Hovered.IsDir,
			}
		}
		return s.actions.Activate(h, req.Cwd, hov)
	case "unmount":
		return s.actions.Unmount(h, req.Cwd)
	case "list":
		return s.actions.List(h)
	case "cleanup":
		return s.actions.Cleanup(h)
	case "":
		return s.warn(h, "no action specified")
	default:
		return s.warn(h, fmt.Sprintf("unknown action %q", req.Action))
	}
}

func (s *Server) warn(h host.Host, msg string) error {
	log.Warn(msg)
	if err := h.Notify(host.LevelWarn, msg, warnTimeout); err != nil {
		log.Warn("failed to notify host", "error", err)
	}
	return errors.New(msg)
}

func writeResponse(conn net.Conn, resp Response) {
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		log.Warn("failed to write response", "error", err)
	}
}
