//go:build linux

package fs

import "github.com/moby/sys/mountinfo"

// MountPoint returns the longest mount point prefixing path, or "" when
// the mount table cannot be read.
func MountPoint(path string) string {
	mounts, err := mountinfo.GetMounts(mountinfo.ParentsFilter(path))
	if err != nil || len(mounts) == 0 {
		return ""
	}

	best := ""
	for _, m := range mounts {
		if len(m.Mountpoint) > len(best) {
			best = m.Mountpoint
		}
	}
	return best
}
