// Package fs provides the relocation primitives behind the trash engine:
// an atomic rename fast path and two cross-device fallbacks (in-process
// copy+delete, then external mv/rm), selected internally so callers see a
// single Move operation.
package fs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"al.essio.dev/pkg/shellescape"
	cp "github.com/otiai10/copy"
	"golang.org/x/sys/unix"
)

var (
	// ErrSourceNotFound is returned when the move source does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrDestinationExists is returned when the destination is occupied
	// and the move was not forced.
	ErrDestinationExists = errors.New("destination already exists")
)

// MoveOptions specifies options for move operations.
type MoveOptions struct {
	// AllowCrossDev enables the copy+delete and subprocess fallbacks
	// when source and destination live on different devices.
	AllowCrossDev bool

	// Force skips the destination-existence check.
	Force bool
}

// MoveError wraps a failed move with the operation stage that failed.
type MoveError struct {
	Op  string
	Src string
	Dst string
	Err error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// Move relocates src to dst. Same-device moves are a single rename(2);
// cross-device moves fall back to copy+delete and, failing that, to
// external mv. After any fallback both ends are verified: the source must
// be gone and the destination present.
func Move(src, dst string, opts MoveOptions) error {
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return ErrSourceNotFound
		}
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &MoveError{Op: "create_parent", Src: src, Dst: dst, Err: err}
	}

	if !opts.Force {
		if _, err := os.Lstat(dst); err == nil {
			return ErrDestinationExists
		}
	}

	if opts.AllowCrossDev {
		if same, err := SameDevice(src, dst); err == nil && !same {
			slog.Debug("source and destination on different devices, skipping rename",
				"src", src, "srcMount", MountPoint(src),
				"dst", dst, "dstMount", MountPoint(dst))
			return moveCrossDevice(src, dst)
		}
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !opts.AllowCrossDev || !isCrossDevice(err) {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
	}

	// Bind mounts can report one device yet still refuse the rename, so
	// EXDEV from the kernel is authoritative over the device probe.
	slog.Debug("rename crossed devices, falling back",
		"src", src, "srcMount", MountPoint(src),
		"dst", dst, "dstMount", MountPoint(dst))
	return moveCrossDevice(src, dst)
}

// moveCrossDevice relocates across devices: in-process copy+delete, then
// mv(1) as the last resort, then existence verification at both ends.
func moveCrossDevice(src, dst string) error {
	if cpErr := copyAndDelete(src, dst); cpErr != nil {
		if execErr := execMove(src, dst); execErr != nil {
			return &MoveError{Op: "fallback", Src: src, Dst: dst,
				Err: fmt.Errorf("copy: %v; mv: %w", cpErr, execErr)}
		}
	}
	return verifyMove(src, dst)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

// copyAndDelete copies src to dst preserving times, owner and symlinks,
// then removes src. A failed source removal cleans up the copy so no
// duplicate survives.
func copyAndDelete(src, dst string) error {
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		PreserveOwner: true,
		Sync:          true,
	}

	if err := cp.Copy(src, dst, opts); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	if err := os.RemoveAll(src); err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return fmt.Errorf("remove source and destination both failed: %v, %v", err, rmErr)
		}
		return fmt.Errorf("remove source after copy: %w", err)
	}

	return nil
}

// execMove invokes mv(1) synchronously as a unit copy-and-remove.
func execMove(src, dst string) error {
	return runForeground("mv", "--", src, dst)
}

// RemoveTree permanently removes one or more paths and everything below
// them. The native path handles each argument in process; callers needing
// the external form use RemoveTreeExec.
func RemoveTree(paths ...string) error {
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTreeExec removes paths with rm(1), used when payload and metadata
// must be deleted as one external unit operation.
func RemoveTreeExec(paths ...string) error {
	args := append([]string{"-rf", "--"}, paths...)
	return runForeground("rm", args...)
}

func runForeground(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	slog.Debug("running external command",
		"command", shellescape.QuoteCommand(append([]string{name}, args...)))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// verifyMove confirms a fallback move actually completed: source gone,
// destination present.
func verifyMove(src, dst string) error {
	if _, err := os.Lstat(src); err == nil {
		return &MoveError{Op: "verify", Src: src, Dst: dst,
			Err: errors.New("source still present after move")}
	}
	if _, err := os.Lstat(dst); err != nil {
		return &MoveError{Op: "verify", Src: src, Dst: dst,
			Err: fmt.Errorf("destination missing after move: %w", err)}
	}
	return nil
}

// SameDevice reports whether both paths reside on the same device. A
// missing destination is resolved through its closest existing parent.
func SameDevice(a, b string) (bool, error) {
	da, err := deviceOf(a)
	if err != nil {
		return false, err
	}
	db, err := deviceOf(b)
	if err != nil {
		return false, err
	}
	return da == db, nil
}

func deviceOf(path string) (uint64, error) {
	for {
		var st unix.Stat_t
		err := unix.Lstat(path, &st)
		if err == nil {
			return uint64(st.Dev), nil
		}
		if !os.IsNotExist(err) {
			return 0, &os.PathError{Op: "lstat", Path: path, Err: err}
		}
		parent := filepath.Dir(path)
		if parent == path {
			return 0, &os.PathError{Op: "lstat", Path: path, Err: err}
		}
		path = parent
	}
}

// CreateExclusive creates a new file with O_EXCL so an existing file is
// never overwritten.
func CreateExclusive(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

// DirSize returns the cumulative size of path in bytes.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
