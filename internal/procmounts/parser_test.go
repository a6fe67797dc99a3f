package procmounts

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTable = `proc /proc proc rw,nosuid,nodev,noexec,relatime 0 0
/dev/sda2 / ext4 rw,relatime 0 0
fuse-archive /home/u/.local/state/fa/data.tar.gz.tmp68a9 fuse.fuse-archive ro,nosuid,nodev 0 0
fuse-archive /mnt/with\040space fuse.fuse-archive ro 0 0
garbage-line
`

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mounts")
	if err := os.WriteFile(path, []byte(sampleTable), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	mounts, err := Parse(writeTable(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// The garbage line is skipped
	if len(mounts) != 4 {
		t.Fatalf("parsed %d entries, want 4", len(mounts))
	}

	if mounts[2].Device != "fuse-archive" || mounts[2].FSType != "fuse.fuse-archive" {
		t.Errorf("unexpected entry: %+v", mounts[2])
	}

	// Octal escapes are decoded
	if mounts[3].MountPoint != "/mnt/with space" {
		t.Errorf("escaped mount point = %q, want %q", mounts[3].MountPoint, "/mnt/with space")
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing mount table")
	}
}

func TestHasMountPoint(t *testing.T) {
	mounts, err := Parse(writeTable(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"tracked mount", "/home/u/.local/state/fa/data.tar.gz.tmp68a9", true},
		{"root", "/", true},
		{"unknown path", "/home/u", false},
		// Full-path matching only; a shared basename is not enough
		{"basename collision", "/elsewhere/data.tar.gz.tmp68a9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mounts.HasMountPoint(tt.path); got != tt.want {
				t.Errorf("HasMountPoint(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMountPoints(t *testing.T) {
	mounts, err := Parse(writeTable(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	points := mounts.MountPoints()
	if len(points) != 4 {
		t.Fatalf("%d mount points, want 4", len(points))
	}
	if _, ok := points["/proc"]; !ok {
		t.Error("missing /proc in mount point set")
	}
}
