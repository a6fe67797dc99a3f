// Package registry mirrors the live mount records to a JSON file on disk.
// The file is a best-effort projection: the filesystem is the source of
// truth, and a failed write never rolls back the in-memory state that
// triggered it.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/TheronStein/fuse-archive.yazi/internal/store"
)

// Version is the registry schema version.
const Version = "1.0"

// The on-disk field names are fixed for compatibility with earlier
// releases; archive_path is additive.
type entry struct {
	Archive     string `json:"archive"`
	ArchivePath string `json:"archive_path,omitempty"`
	MountPoint  string `json:"mount_point"`
	Cwd         string `json:"cwd"`
	Timestamp   int64  `json:"timestamp"`
}

type file struct {
	Version   string  `json:"version"`
	Timestamp int64   `json:"timestamp"`
	Mounts    []entry `json:"mounts"`
}

// Save serializes a store snapshot to path, creating parent directories
// as needed. Entries are written in id order; the ordering carries no
// meaning beyond making writes deterministic.
func Save(path string, snapshot map[string]store.Record) error {
	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := file{
		Version:   Version,
		Timestamp: time.Now().Unix(),
		Mounts:    make([]entry, 0, len(ids)),
	}
	for _, id := range ids {
		rec := snapshot[id]
		out.Mounts = append(out.Mounts, entry{
			Archive:     id,
			ArchivePath: rec.ArchivePath,
			MountPoint:  rec.MountPoint,
			Cwd:         rec.OriginalDir,
			Timestamp:   rec.CreatedAt.Unix(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}

	return nil
}

// Load parses the registry file back into records keyed by mount id.
// A missing file yields an empty map. Load is informational: it never
// repopulates the live store by itself.
func Load(path string) (map[string]store.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]store.Record{}, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var in file
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	records := make(map[string]store.Record, len(in.Mounts))
	for _, e := range in.Mounts {
		if e.Archive == "" {
			continue
		}
		var name string
		if e.ArchivePath != "" {
			name = filepath.Base(e.ArchivePath)
		}
		records[e.Archive] = store.Record{
			ArchivePath: e.ArchivePath,
			ArchiveName: name,
			MountPoint:  e.MountPoint,
			OriginalDir: e.Cwd,
			CreatedAt:   time.Unix(e.Timestamp, 0),
		}
	}

	return records, nil
}
