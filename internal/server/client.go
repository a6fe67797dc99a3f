package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

// Send delivers one request to the daemon at socketPath and waits for
// the response. A non-OK response comes back as an error.
func Send(socketPath string, req Request) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to daemon at %s (is it running?): %w", socketPath, err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if !resp.OK {
		return errors.New(resp.Error)
	}
	return nil
}
