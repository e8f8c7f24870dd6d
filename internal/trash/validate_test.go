package trash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanRelocatePlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	mustWrite(t, path, "x")

	if err := CanRelocate(path); err != nil {
		t.Errorf("CanRelocate() error = %v", err)
	}
}

func TestCanRelocateMissing(t *testing.T) {
	err := CanRelocate(filepath.Join(t.TempDir(), "nope"))
	if !IsNotFound(err) {
		t.Errorf("CanRelocate() error = %v, want NotFound", err)
	}
}

func TestCanRelocateEmptyDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "empty")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := CanRelocate(sub); err != nil {
		t.Errorf("CanRelocate(empty dir) error = %v", err)
	}
}

// A tree with one unwritable nested subdirectory must be denied, and the
// denial must name the offender without aborting the sweep early.
func TestCanRelocateRecursiveSweep(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks are meaningless as root")
	}

	dir := t.TempDir()
	top := filepath.Join(dir, "top")
	bad := filepath.Join(top, "a", "locked")
	if err := os.MkdirAll(bad, 0755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(top, "a", "f.txt"), "x")

	if err := os.Chmod(bad, 0500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(bad, 0755) })

	err := CanRelocate(top)
	if !IsPermissionDenied(err) {
		t.Fatalf("CanRelocate() error = %v, want PermissionDenied", err)
	}

	// The top-level directory must remain at its original location.
	if _, statErr := os.Stat(top); statErr != nil {
		t.Errorf("top-level directory disturbed: %v", statErr)
	}
}

// An unreadable directory cannot be enumerated, so the subtree sweep is
// skipped; its own write+execute permissions must still be checked
// instead of treating the enumeration failure as an empty directory.
func TestCanRelocateUnreadableDir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks are meaningless as root")
	}

	dir := t.TempDir()
	sub := filepath.Join(dir, "blind")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(sub, "f.txt"), "x")

	// Write+execute without read: relocatable, since a rename never
	// enumerates the tree.
	if err := os.Chmod(sub, 0300); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(sub, 0755) })
	if err := CanRelocate(sub); err != nil {
		t.Errorf("CanRelocate(write-only dir) error = %v", err)
	}

	// Execute only: the directory itself fails the write check.
	if err := os.Chmod(sub, 0100); err != nil {
		t.Fatal(err)
	}
	err := CanRelocate(sub)
	if !IsPermissionDenied(err) {
		t.Errorf("CanRelocate(exec-only dir) error = %v, want PermissionDenied", err)
	}
}

func TestCanRelocateSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	mustWrite(t, target, "x")
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := CanRelocate(link); err != nil {
		t.Errorf("CanRelocate(symlink) error = %v", err)
	}

	// A dangling symlink is still relocatable; only the link moves.
	dangling := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "void"), dangling); err != nil {
		t.Fatal(err)
	}
	if err := CanRelocate(dangling); err != nil {
		t.Errorf("CanRelocate(dangling symlink) error = %v", err)
	}
}

func TestCanRelocateDevice(t *testing.T) {
	if _, err := os.Lstat("/dev/null"); err != nil {
		t.Skip("no /dev/null here")
	}
	err := CanRelocate("/dev/null")
	if !IsUnsupportedType(err) {
		t.Errorf("CanRelocate(/dev/null) error = %v, want UnsupportedType", err)
	}
}
