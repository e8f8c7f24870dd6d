//go:build !linux

package fs

// MountPoint is unsupported here; the device comparison in SameDevice
// does not depend on it.
func MountPoint(string) string { return "" }
