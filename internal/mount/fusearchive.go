package mount

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/TheronStein/fuse-archive.yazi/internal/executor"
	"github.com/TheronStein/fuse-archive.yazi/internal/log"
	"github.com/TheronStein/fuse-archive.yazi/internal/procmounts"
)

// FuseArchive implements Mounter using the fuse-archive and fusermount
// binaries. Both are invoked with discrete argument vectors and run to
// completion; there is no cancellation or timeout.
type FuseArchive struct {
	run        executor.Runner
	mountTable string
}

// NewFuseArchive creates a Mounter backed by the external fuse-archive
// tooling.
func NewFuseArchive() *FuseArchive {
	return &FuseArchive{
		run:        executor.Run,
		mountTable: procmounts.DefaultPath,
	}
}

// Mount mounts the archive read-only at target.
func (f *FuseArchive) Mount(archivePath, target string) error {
	log.Debug("mounting archive", "archive", archivePath, "target", target)

	if _, err := f.run("fuse-archive", []string{"-o", "ro", archivePath, target}, ""); err != nil {
		return fmt.Errorf("fuse-archive: %w", err)
	}

	log.Debug("mounted successfully", "archive", archivePath, "target", target)
	return nil
}

// Unmount detaches target. A plain unmount is attempted first; if it
// fails (typically "device busy"), a lazy unmount is tried once. The
// escalation is a fixed two-step chain, not a retry loop.
func (f *FuseArchive) Unmount(target string) error {
	log.Debug("unmounting", "target", target)

	_, plainErr := f.run("fusermount", []string{"-u", target}, "")
	if plainErr == nil {
		log.Debug("unmounted successfully", "target", target)
		return nil
	}

	log.Debug("plain unmount failed, retrying lazily", "target", target, "error", plainErr)

	if _, lazyErr := f.run("fusermount", []string{"-uz", target}, ""); lazyErr != nil {
		return fmt.Errorf("unmount %s: %w", target, errors.Join(plainErr, lazyErr))
	}

	log.Debug("lazy unmount succeeded", "target", target)
	return nil
}

// IsMounted checks whether the OS mount table lists target.
func (f *FuseArchive) IsMounted(target string) (bool, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false, fmt.Errorf("get absolute path: %w", err)
	}

	mounts, err := procmounts.Parse(f.mountTable)
	if err != nil {
		return false, fmt.Errorf("unable to parse mounts: %w", err)
	}

	return mounts.HasMountPoint(absTarget), nil
}
