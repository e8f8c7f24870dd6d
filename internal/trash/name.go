package trash

import (
	"time"

	"github.com/rs/xid"
)

const (
	// nameMax is the byte limit most filesystems impose on a single name.
	nameMax = 255

	// truncationMarker terminates a basename that had to be trimmed to
	// fit nameMax, so the user can see the name was cut.
	truncationMarker = '~'
)

// itemName composes the trashed item name <basename>.<suffix>. The suffix
// is a fixed-width seconds-precision timestamp. If the composed name plus
// the metadata suffix would exceed nameMax, the basename is truncated on
// raw bytes and terminated with the truncation marker.
func itemName(base string, t time.Time) string {
	return composeName(base, t.Format(timeFormat))
}

// disambiguate rebuilds a colliding item name with a unique id appended
// to the timestamp suffix, covering different files trashed under the
// same basename within the same second.
func disambiguate(base string, t time.Time) string {
	return composeName(base, t.Format(timeFormat)+"."+xid.New().String())
}

func composeName(base, suffix string) string {
	// base + "." + suffix + ".trashinfo" must fit in nameMax. The
	// truncation operates on raw bytes, not characters.
	over := len(base) + 1 + len(suffix) + len(infoSuffix) - nameMax
	if over > 0 {
		base = base[:len(base)-over-1] + string(truncationMarker)
	}
	return base + "." + suffix
}
