//go:build linux

package trash

import (
	"io/fs"
	"syscall"
	"time"

	"github.com/suteru/suteru/internal/ordering"
)

// fillSysEntry copies inode and owner identity from the raw stat data
// and swaps in the timestamp matching the sort key. Birth time is not
// portably available and degrades to ctime.
func fillSysEntry(oe *ordering.Entry, fi fs.FileInfo, key ordering.Key) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	oe.Inode = st.Ino
	oe.UID = uint64(st.Uid)
	oe.GID = uint64(st.Gid)

	switch key {
	case ordering.ATime:
		oe.Time = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	case ordering.BTime, ordering.CTime:
		oe.Time = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
}
