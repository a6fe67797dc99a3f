// Package procmounts reads the kernel mount table. It is the source of
// truth for "is this path actually mounted" during reconciliation.
package procmounts

// Entry represents an entry in /proc/mounts
type Entry struct {
	Device     string
	MountPoint string
	FSType     string
	Options    string
}

// Table is a parsed mount table.
type Table []Entry

// HasMountPoint reports whether path appears as a mount point. Matching
// is by full path, never by basename.
func (t Table) HasMountPoint(path string) bool {
	for _, e := range t {
		if e.MountPoint == path {
			return true
		}
	}
	return false
}

// MountPoints returns the set of all mount points in the table.
func (t Table) MountPoints() map[string]struct{} {
	points := make(map[string]struct{}, len(t))
	for _, e := range t {
		points[e.MountPoint] = struct{}{}
	}
	return points
}
