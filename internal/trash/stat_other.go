//go:build !linux

package trash

import (
	"io/fs"

	"github.com/suteru/suteru/internal/ordering"
)

// fillSysEntry has no portable source for inode, owner or the extra
// timestamps here; the comparator falls back to name order for those
// keys, matching the light-mode degradation.
func fillSysEntry(*ordering.Entry, fs.FileInfo, ordering.Key) {}
