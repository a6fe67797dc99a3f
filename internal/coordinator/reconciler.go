package coordinator

import (
	"fmt"
	"os"

	"github.com/TheronStein/fuse-archive.yazi/internal/host"
	"github.com/TheronStein/fuse-archive.yazi/internal/log"
	"github.com/TheronStein/fuse-archive.yazi/internal/registry"
)

// Cleanup reconciles tracked records against the OS mount table and
// reports how many stale entries were removed.
func (c *Coordinator) Cleanup(h host.Host) error {
	cleaned := c.reconcile()

	if cleaned > 0 {
		c.persist(h)
		c.notify(h, host.LevelInfo, fmt.Sprintf("cleaned %d stale mount(s)", cleaned))
	} else {
		c.notify(h, host.LevelInfo, "no stale mounts found")
	}
	return nil
}

// reconcile removes every record whose mount point the OS no longer
// reports as mounted, along with its leftover directory. Records are kept
// when the mount check itself fails; reconciliation only acts on a
// definite "not mounted". Running it twice with no intervening mount
// activity cleans nothing on the second pass.
func (c *Coordinator) reconcile() int {
	cleaned := 0
	for id, rec := range c.store.Snapshot() {
		if rec.MountPoint == "" {
			log.Warn("record without mount point, dropping", "id", id)
			c.store.Delete(id)
			cleaned++
			continue
		}

		mounted, err := c.mounter.IsMounted(rec.MountPoint)
		if err != nil {
			log.Warn("cannot determine mount state, keeping record", "id", id, "error", err)
			continue
		}
		if mounted {
			continue
		}

		// Orphaned mount point, likely left by a crash or an external
		// unmount.
		if err := os.Remove(rec.MountPoint); err != nil && !os.IsNotExist(err) {
			log.Debug("failed to remove stale mount directory", "path", rec.MountPoint, "error", err)
		}
		c.store.Delete(id)
		cleaned++

		log.Info("removed stale mount record", "id", id, "mountPoint", rec.MountPoint)
	}
	return cleaned
}

// StartupCleanup seeds reconciliation candidates from the persisted
// registry and runs one pass. Records the OS still reports mounted
// survive into the live store; the rest are discarded together with
// their directories. Disabled by default.
func (c *Coordinator) StartupCleanup() (int, error) {
	saved, err := registry.Load(c.cfg.RegistryPath)
	if err != nil {
		return 0, fmt.Errorf("load registry: %w", err)
	}

	for id, rec := range saved {
		if _, ok := c.store.Get(id); !ok {
			c.store.Set(id, rec)
		}
	}

	cleaned := c.reconcile()
	if err := registry.Save(c.cfg.RegistryPath, c.store.Snapshot()); err != nil {
		log.Warn("failed to persist registry after startup cleanup", "error", err)
	}

	log.Info("startup cleanup finished", "recovered", c.store.Len(), "cleaned", cleaned)
	return cleaned, nil
}
