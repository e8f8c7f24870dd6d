//go:build linux

package trash

import (
	"os"

	"golang.org/x/sys/unix"
)

// fsImmutableFL is FS_IMMUTABLE_FL from linux/fs.h; x/sys/unix does not
// export it.
const fsImmutableFL = 0x00000010

// isImmutable reads the inode flags and reports whether the immutable
// attribute is set. Filesystems without attribute support return ENOTTY
// or ENOTSUP, which the caller treats as a degraded-capability notice.
func isImmutable(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		// Directories without read permission cannot be opened; the
		// permission checks cover that case separately.
		return false, err
	}
	defer f.Close()

	flags, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		return false, err
	}
	return flags&fsImmutableFL != 0, nil
}
