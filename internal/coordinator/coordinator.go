// Package coordinator implements the mount lifecycle state machine:
// deciding whether an activated entry is entered, opened, or mounted,
// performing mounts and unmounts through the external tooling, and
// keeping the state store and the persisted registry in step.
package coordinator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/TheronStein/fuse-archive.yazi/internal/archive"
	"github.com/TheronStein/fuse-archive.yazi/internal/config"
	"github.com/TheronStein/fuse-archive.yazi/internal/host"
	"github.com/TheronStein/fuse-archive.yazi/internal/log"
	"github.com/TheronStein/fuse-archive.yazi/internal/mount"
	"github.com/TheronStein/fuse-archive.yazi/internal/registry"
	"github.com/TheronStein/fuse-archive.yazi/internal/store"
)

// notifyTimeout is the display duration for routine notifications;
// errors stay up longer.
const (
	notifyTimeout = 5 * time.Second
	errorTimeout  = 10 * time.Second
)

// Hovered describes the entry under the cursor when an action fired.
type Hovered struct {
	Name  string
	Path  string
	IsDir bool
}

// Coordinator runs all slow-tier mount work. Methods may be called
// concurrently; per-archive locks serialize mount/unmount for the same
// archive while the store itself stays lock-free of I/O.
type Coordinator struct {
	cfg     *config.Config
	store   *store.Store
	mounter mount.Mounter

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	// now is replaceable in tests
	now func() time.Time
}

// New creates a coordinator over the given store and mounter.
func New(cfg *config.Config, st *store.Store, mounter mount.Mounter) *Coordinator {
	return &Coordinator{
		cfg:     cfg,
		store:   st,
		mounter: mounter,
		locks:   make(map[string]*sync.Mutex),
		now:     time.Now,
	}
}

// lock acquires the mutual-exclusion lock for an archive path, creating
// it on first use. It is taken before the duplicate-mount check and held
// until the record is committed or the attempt aborts, so two concurrent
// activations of the same archive cannot both pass the check.
func (c *Coordinator) lock(archivePath string) func() {
	c.lockMu.Lock()
	l, ok := c.locks[archivePath]
	if !ok {
		l = &sync.Mutex{}
		c.locks[archivePath] = l
	}
	c.lockMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Activate handles a user "activate" action on the hovered entry.
// Directories are entered, unsupported files are entered or opened
// depending on smart-enter, and archives are mounted.
func (c *Coordinator) Activate(h host.Host, cwd string, hov *Hovered) error {
	if hov == nil {
		return h.Enter()
	}

	if hov.IsDir {
		return h.Enter()
	}

	if !archive.IsArchive(hov.Name) {
		if c.cfg.SmartEnter {
			return h.OpenHovered()
		}
		return h.Enter()
	}

	return c.mountArchive(h, cwd, hov)
}

// mountArchive performs the mount operation for an archive file.
func (c *Coordinator) mountArchive(h host.Host, cwd string, hov *Hovered) error {
	id := archive.MountID(hov.Name, c.now())

	unlock := c.lock(hov.Path)
	defer unlock()

	// Duplicate check: the same archive already live means navigate,
	// not mount.
	if existing, ok := c.findLive(id, hov.Path); ok {
		log.Debug("archive already mounted", "archive", hov.Name, "mountPoint", existing.MountPoint)
		c.notify(h, host.LevelWarn, fmt.Sprintf("%s is already mounted", hov.Name))
		return h.NavigateTo(existing.MountPoint)
	}

	target := filepath.Join(c.cfg.MountDir, id)
	if err := os.MkdirAll(target, 0755); err != nil {
		c.notify(h, host.LevelError, fmt.Sprintf("cannot create mount point for %s: %v", hov.Name, err))
		return fmt.Errorf("create mount point: %w", err)
	}

	if err := c.mounter.Mount(hov.Path, target); err != nil {
		// The operation must leave no residue on failure.
		if rmErr := os.RemoveAll(target); rmErr != nil {
			log.Warn("failed to remove mount point after failed mount", "path", target, "error", rmErr)
		}
		c.notify(h, host.LevelError, fmt.Sprintf("mounting %s failed: %v", hov.Name, err))
		return fmt.Errorf("mount %s: %w", hov.Name, err)
	}

	c.store.Set(id, store.Record{
		ArchivePath: hov.Path,
		ArchiveName: hov.Name,
		MountPoint:  target,
		OriginalDir: cwd,
		CreatedAt:   c.now(),
	})
	c.persist(h)

	log.Info("archive mounted", "archive", hov.Name, "mountPoint", target)
	return h.NavigateTo(target)
}

// findLive returns a live record for the given mount id or archive path.
// A record counts as live only while its mount point still exists.
func (c *Coordinator) findLive(id, archivePath string) (store.Record, bool) {
	if rec, ok := c.store.Get(id); ok && dirExists(rec.MountPoint) {
		return rec, true
	}
	for _, rec := range c.store.Snapshot() {
		if rec.ArchivePath == archivePath && dirExists(rec.MountPoint) {
			return rec, true
		}
	}
	return store.Record{}, false
}

// Unmount handles the user's "unmount" action from cwd. When cwd is not
// a tracked mount point this is a plain directory-leave.
func (c *Coordinator) Unmount(h host.Host, cwd string) error {
	id, rec, ok := c.recordAt(cwd)
	if !ok {
		return h.Leave()
	}

	unlock := c.lock(rec.ArchivePath)
	defer unlock()

	// Re-read under the lock; a concurrent unmount may have won.
	rec, ok = c.store.Get(id)
	if !ok {
		return h.Leave()
	}

	if rec.MountPoint == "" || rec.OriginalDir == "" {
		log.Warn("mount record incomplete, falling back to leave", "id", id)
		c.notify(h, host.LevelWarn, "mount record incomplete, leaving directory")
		return h.Leave()
	}

	// Navigate away first: the unmount tool fails with "device busy"
	// while the cwd is still inside the mount.
	if err := h.NavigateTo(rec.OriginalDir); err != nil {
		log.Warn("failed to navigate back before unmount", "path", rec.OriginalDir, "error", err)
	}

	if err := c.mounter.Unmount(rec.MountPoint); err != nil {
		c.notify(h, host.LevelError, fmt.Sprintf("unmounting %s failed: %v", rec.ArchiveName, err))
		return fmt.Errorf("unmount %s: %w", rec.ArchiveName, err)
	}

	// The tool may already have removed the directory, or a race may
	// have left it non-empty.
	if err := os.Remove(rec.MountPoint); err != nil && !os.IsNotExist(err) {
		log.Debug("failed to remove mount directory", "path", rec.MountPoint, "error", err)
	}

	c.store.Delete(id)
	c.persist(h)

	log.Info("archive unmounted", "archive", rec.ArchiveName, "mountPoint", rec.MountPoint)
	c.notify(h, host.LevelInfo, fmt.Sprintf("unmounted %s", rec.ArchiveName))
	return nil
}

// recordAt finds the tracked record whose mount point is cwd. Matching
// is by full path; basenames of generated ids can collide across parents.
func (c *Coordinator) recordAt(cwd string) (string, store.Record, bool) {
	cwd = filepath.Clean(cwd)
	for id, rec := range c.store.Snapshot() {
		if rec.MountPoint != "" && filepath.Clean(rec.MountPoint) == cwd {
			return id, rec, true
		}
	}
	return "", store.Record{}, false
}

// List reports every live mount to the user.
func (c *Coordinator) List(h host.Host) error {
	snap := c.store.Snapshot()

	ids := make([]string, 0, len(snap))
	for id, rec := range snap {
		if rec.MountPoint != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	if len(ids) == 0 {
		c.notify(h, host.LevelInfo, "No archives currently mounted")
		return nil
	}

	c.notify(h, host.LevelInfo, fmt.Sprintf("%d archive(s) mounted", len(ids)))
	for _, id := range ids {
		rec := snap[id]
		c.notify(h, host.LevelInfo, fmt.Sprintf("%s -> %s", rec.ArchiveName, rec.MountPoint))
	}
	return nil
}

// persist mirrors the store to the registry file. Failures are warnings:
// the live mount state is the source of truth and is never rolled back.
func (c *Coordinator) persist(h host.Host) {
	if err := registry.Save(c.cfg.RegistryPath, c.store.Snapshot()); err != nil {
		log.Warn("failed to persist registry", "path", c.cfg.RegistryPath, "error", err)
		c.notify(h, host.LevelWarn, fmt.Sprintf("could not save mount registry: %v", err))
	}
}

func (c *Coordinator) notify(h host.Host, level host.Level, msg string) {
	timeout := notifyTimeout
	if level == host.LevelError {
		timeout = errorTimeout
	}
	if err := h.Notify(level, msg, timeout); err != nil {
		log.Warn("failed to notify host", "msg", msg, "error", err)
	}
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
