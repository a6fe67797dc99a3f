package mount

// Mounter defines the interface for archive mount/unmount operations
type Mounter interface {
	// Mount exposes the archive's contents read-only under target
	Mount(archivePath, target string) error
	// Unmount detaches the archive mounted at target
	Unmount(target string) error
	// IsMounted checks whether the OS reports target as a mount point
	IsMounted(target string) (bool, error)
}
