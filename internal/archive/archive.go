// Package archive decides which files are mountable archives and
// generates mount identities for them.
package archive

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// extensions is the allow-list of mountable archive formats. It matches
// what fuse-archive itself supports.
var extensions = map[string]struct{}{
	"zip":  {},
	"gz":   {},
	"bz2":  {},
	"tar":  {},
	"tgz":  {},
	"tbz2": {},
	"txz":  {},
	"xz":   {},
	"tzs":  {},
	"zst":  {},
	"iso":  {},
	"rar":  {},
	"7z":   {},
	"cpio": {},
	"lz":   {},
	"lzma": {},
	"shar": {},
	"a":    {},
	"ar":   {},
	"apk":  {},
	"jar":  {},
	"xpi":  {},
	"cab":  {},
}

// IsArchive reports whether the file name carries a supported archive
// extension. The check is case-insensitive and looks at the last
// dot-suffix only, so "data.tar.gz" matches via "gz".
func IsArchive(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	_, ok := extensions[strings.ToLower(ext)]
	return ok
}

// MountID derives the mount identity for an archive: the file name
// suffixed with ".tmp" and the current unix time in lowercase hex.
// Seconds resolution keeps collisions unlikely, not impossible; the id
// is a dedup key, not a cryptographic one.
func MountID(name string, now time.Time) string {
	return name + ".tmp" + strconv.FormatInt(now.Unix(), 16)
}
