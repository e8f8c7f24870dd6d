package trash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/suteru/suteru/internal/ordering"
)

// Dirs holds the on-disk layout of the trash holding area. It is built
// once at startup and never mutated afterwards; every operation receives
// it through the Storage it belongs to.
type Dirs struct {
	// Root is the trash holding area root.
	Root string

	// Files is Root/files, where relocated payloads live.
	Files string

	// Info is Root/info, where .trashinfo metadata records live.
	Info string
}

// NewDirs lays out the standard files/info pair under root.
func NewDirs(root string) Dirs {
	return Dirs{
		Root:  root,
		Files: filepath.Join(root, "files"),
		Info:  filepath.Join(root, "info"),
	}
}

// Ensure creates the holding area directories if missing.
func (d Dirs) Ensure() error {
	if !filepath.IsAbs(d.Root) {
		return fmt.Errorf("trash root must be an absolute path: %s", d.Root)
	}
	for _, dir := range []string{d.Files, d.Info} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// InfoPath returns the metadata record path for a trashed item name.
func (d Dirs) InfoPath(name string) string {
	return filepath.Join(d.Info, name+infoSuffix)
}

// FilePath returns the payload path for a trashed item name.
func (d Dirs) FilePath(name string) string {
	return filepath.Join(d.Files, name)
}

// Config configures a Storage.
type Config struct {
	Dirs Dirs

	// Ordering drives the listing order and ELN assignment.
	Ordering ordering.Options

	// Filter is applied to every directory scan of the files area.
	Filter ScanFilter
}
