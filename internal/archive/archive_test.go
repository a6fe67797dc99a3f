package archive

import (
	"testing"
	"time"
)

func TestIsArchive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		// Supported formats
		{"zip", "photos.zip", true},
		{"tar", "backup.tar", true},
		{"compressed tar by last suffix", "data.tar.gz", true},
		{"tgz", "data.tgz", true},
		{"tbz2", "data.tbz2", true},
		{"xz", "kernel.xz", true},
		{"zstd", "dump.zst", true},
		{"iso image", "distro.iso", true},
		{"rar", "release.rar", true},
		{"7z", "files.7z", true},
		{"cpio", "initrd.cpio", true},
		{"static lib", "libfoo.a", true},
		{"android package", "app.apk", true},
		{"java archive", "tool.jar", true},
		{"firefox extension", "ext.xpi", true},
		{"cabinet", "driver.cab", true},
		{"uppercase extension", "PHOTOS.ZIP", true},
		{"mixed case", "Data.Tar.Gz", true},

		// Not archives
		{"plain text", "notes.txt", false},
		{"no extension", "Makefile", false},
		{"trailing dot", "weird.", false},
		{"empty name", "", false},
		{"extension-like name", "zip", false},
		{"unsupported format", "video.mkv", false},
		{"dotfile", ".bashrc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsArchive(tt.input); got != tt.want {
				t.Errorf("IsArchive(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMountID(t *testing.T) {
	tests := []struct {
		name string
		file string
		at   time.Time
		want string
	}{
		{"hex seconds suffix", "data.tar.gz", time.Unix(0x68a9, 0), "data.tar.gz.tmp68a9"},
		{"lowercase hex", "a.zip", time.Unix(0xABCDEF, 0), "a.zip.tmpabcdef"},
		{"subsecond precision ignored", "a.zip", time.Unix(16, 999_999_999), "a.zip.tmp10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MountID(tt.file, tt.at); got != tt.want {
				t.Errorf("MountID(%q, %v) = %q, want %q", tt.file, tt.at.Unix(), got, tt.want)
			}
		})
	}
}

func TestMountIDStableWithinSecond(t *testing.T) {
	at := time.Unix(1700000000, 0)
	a := MountID("data.zip", at)
	b := MountID("data.zip", at.Add(500*time.Millisecond))
	if a != b {
		t.Errorf("ids within the same second differ: %q vs %q", a, b)
	}
}
