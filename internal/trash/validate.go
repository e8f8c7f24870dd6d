package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// CanRelocate reports whether path may be moved out of its parent
// directory. A relocation is a rename, which only needs write+execute at
// the directory levels being mutated; but a rename can succeed even when
// a deeply nested subdirectory is unwritable, leaving a half-removable
// tree that later breaks restoration. So for non-empty directories the
// whole subtree of subdirectories is swept and every offender reported.
//
// A nil error means the relocation is safe.
func CanRelocate(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStorageError("validate", path, fmt.Errorf("%w: %v", ErrNotFound, err))
		}
		return NewStorageError("validate", path, err)
	}

	parent := parentDir(path)

	switch {
	case info.Mode()&os.ModeDevice != 0 || info.Mode()&os.ModeCharDevice != 0:
		return NewStorageError("validate", path,
			fmt.Errorf("%w: cannot trash a device", ErrUnsupportedType))

	case info.IsDir():
		return validateDir(path, parent)

	case info.Mode().IsRegular():
		if err := checkNotImmutable(path); err != nil {
			return err
		}
		return checkWriteExec(parent)

	default:
		// Symlinks, sockets and FIFOs do not support the immutable bit.
		return checkWriteExec(parent)
	}
}

func validateDir(path, parent string) error {
	if err := checkNotImmutable(path); err != nil {
		return err
	}
	if err := checkWriteExec(parent); err != nil {
		return err
	}

	// An empty directory only needs the parent's permissions.
	n, err := countEntries(path)
	if err != nil {
		// The relocation is a rename and needs no read access, but an
		// unreadable directory cannot be swept: check its own
		// permissions and note the degraded validation.
		slog.Debug("directory not readable, skipping subtree sweep", "path", path, "error", err)
		return checkWriteExec(path)
	}
	if n == 0 {
		return nil
	}

	if err := checkWriteExec(path); err != nil {
		return err
	}

	offenders := sweepSubdirs(path)
	if len(offenders) > 0 {
		return NewStorageError("validate", path,
			fmt.Errorf("%w: %s", ErrPermissionDenied, strings.Join(offenders, ", ")))
	}
	return nil
}

// sweepSubdirs recursively checks write+execute on every subdirectory of
// dir, accumulating offenders across the whole subtree instead of
// stopping at the first bad one. Only directories are checked; files are
// gated by their parent directory's permissions.
func sweepSubdirs(dir string) []string {
	var offenders []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{dir}
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if unix.Access(sub, unix.W_OK|unix.X_OK) != nil {
			offenders = append(offenders, sub)
		}
		offenders = append(offenders, sweepSubdirs(sub)...)
	}
	return offenders
}

func checkWriteExec(dir string) error {
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return NewStorageError("validate", dir,
			fmt.Errorf("%w: %v", ErrPermissionDenied, err))
	}
	return nil
}

func checkNotImmutable(path string) error {
	immutable, err := isImmutable(path)
	if err != nil {
		// Platforms without immutability support degrade to a notice,
		// not a hard failure.
		slog.Debug("immutability check unsupported", "path", path, "error", err)
		return nil
	}
	if immutable {
		return NewStorageError("validate", path, ErrImmutable)
	}
	return nil
}

// parentDir resolves path's parent; a direct child of the filesystem
// root has the root itself as parent.
func parentDir(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

func countEntries(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
