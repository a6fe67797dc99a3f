package server

// HoveredEntry is the entry under the cursor when the action fired.
type HoveredEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
}

// Request is one action sent by the client. Host UI context (hovered
// entry, cwd, yazi instance id) travels with the request; the daemon
// never queries yazi for it.
type Request struct {
	Action  string        `json:"action"`
	YaziID  string        `json:"yazi_id,omitempty"`
	Cwd     string        `json:"cwd"`
	Hovered *HoveredEntry `json:"hovered,omitempty"`
}

// Response reports whether the action succeeded.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
