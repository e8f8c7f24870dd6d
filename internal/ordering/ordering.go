// Package ordering provides the comparison primitives used to present
// directory entries in a deterministic total order.
package ordering

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Key selects which attribute drives the comparison.
type Key int

const (
	None Key = iota
	Name
	Size
	ATime
	BTime
	CTime
	MTime
	Version
	Extension
	Inode
	Owner
	Group
)

var keyNames = map[Key]string{
	None:      "none",
	Name:      "name",
	Size:      "size",
	ATime:     "atime",
	BTime:     "btime",
	CTime:     "ctime",
	MTime:     "mtime",
	Version:   "version",
	Extension: "extension",
	Inode:     "inode",
	Owner:     "owner",
	Group:     "group",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey resolves a sort key by name.
func ParseKey(s string) (Key, error) {
	for k, name := range keyNames {
		if s == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("%s: no such sorting order", s)
}

// Entry holds the metadata a comparator may consult. Time carries the
// timestamp matching the selected key; in light mode UID/GID are not
// populated.
type Entry struct {
	Name  string
	Size  int64
	Time  time.Time
	IsDir bool
	Inode uint64
	UID   uint64
	GID   uint64
}

// Options configures a Comparator.
type Options struct {
	Key           Key
	Reverse       bool
	DirsFirst     bool
	CaseSensitive bool

	// Unicode enables locale-aware collation for name ties.
	Unicode bool

	// LightMode indicates uid/gid were not fetched; owner and group
	// sorting degrade to sorting by name.
	LightMode bool
}

// Comparator produces a strict total order over entries.
type Comparator struct {
	opts Options
	col  *collate.Collator
}

func NewComparator(opts Options) *Comparator {
	c := &Comparator{opts: opts}
	if opts.Unicode {
		copts := []collate.Option{}
		if !opts.CaseSensitive {
			copts = append(copts, collate.IgnoreCase)
		}
		c.col = collate.New(language.Und, copts...)
	}
	return c
}

// Compare returns a negative value if a sorts before b, positive if after,
// and zero only for fully equal keys. Reversal is a uniform sign flip of
// the final result, never an operand swap, so equal-key stability is
// identical in both directions.
func (c *Comparator) Compare(a, b Entry) int {
	if c.opts.DirsFirst {
		// Dirs-first is a grouping, not a sort key: directories stay
		// first even when the order is reversed.
		if ret := compareDirs(a.IsDir, b.IsDir); ret != 0 {
			return ret
		}
	}

	key := c.opts.Key
	if c.opts.LightMode && (key == Owner || key == Group) {
		key = Name
	}

	var ret int
	switch key {
	case None:
		// No key selected: plain alphabetic scan order, not the natural
		// name order.
		if c.opts.CaseSensitive {
			return c.signed(Alphasort(a.Name, b.Name, false))
		}
		return c.signed(AlphasortInsensitive(a.Name, b.Name, false))
	case Size:
		ret = compareInt64(a.Size, b.Size)
	case ATime, BTime, CTime, MTime:
		ret = compareTime(a.Time, b.Time)
	case Version:
		ret = VersionCompare(a.Name, b.Name)
	case Extension:
		ret = ExtensionCompare(a.Name, b.Name)
	case Inode:
		ret = compareUint64(a.Inode, b.Inode)
	case Owner:
		ret = compareUint64(a.UID, b.UID)
	case Group:
		ret = compareUint64(a.GID, b.GID)
	}

	if ret == 0 {
		ret = c.NameCompare(a.Name, b.Name)
	}
	return c.signed(ret)
}

func (c *Comparator) signed(ret int) int {
	if c.opts.Reverse {
		return -ret
	}
	return ret
}

// Sort orders entries in place.
func (c *Comparator) Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return c.Compare(entries[i], entries[j]) < 0
	})
}

// SortNames orders bare names in place using the natural name comparison.
func (c *Comparator) SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return c.signed(c.NameCompare(names[i], names[j])) < 0
	})
}

// NameCompare implements the natural name order: leading non-alphanumeric
// runs are skipped on both operands, digit runs are compared as
// unbounded-magnitude integers before any lexical fallback (so "file2"
// sorts before "file10"), and ties fall through to a locale-aware (or
// plain byte) comparison.
func (c *Comparator) NameCompare(a, b string) int {
	sa := skipNamePrefix(a)
	sb := skipNamePrefix(b)

	fa, fb := sa, sb
	if !c.opts.CaseSensitive {
		fa, fb = strings.ToLower(sa), strings.ToLower(sb)
	}
	if ret := VersionCompare(fa, fb); ret != 0 {
		return ret
	}

	if c.col != nil {
		return c.col.CompareString(sa, sb)
	}
	return strings.Compare(sa, sb)
}

// skipNamePrefix returns the suffix of s starting at the first ASCII
// letter or digit, or s itself if there is none.
func skipNamePrefix(s string) string {
	for i := 0; i < len(s); i++ {
		if isAlnum(s[i]) {
			return s[i:]
		}
	}
	return s
}

// compareDigitRuns compares the longest leading decimal runs of a and b
// numerically. Leading zeros are trimmed so runs of any magnitude compare
// exactly: the longer trimmed run is the larger number, equal lengths
// compare bytewise.
func compareDigitRuns(a, b string) int {
	da := leadingDigits(a)
	db := leadingDigits(b)

	ta := strings.TrimLeft(da, "0")
	tb := strings.TrimLeft(db, "0")
	if len(ta) != len(tb) {
		return len(ta) - len(tb)
	}
	return strings.Compare(ta, tb)
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i]
}

// VersionCompare orders names the way GNU strverscmp does: interleaved
// digit runs compare numerically and everything else compares bytewise,
// so "file2" sorts before "file10".
func VersionCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			da := leadingDigits(a[i:])
			db := leadingDigits(b[j:])
			if ret := compareDigitRuns(da, db); ret != 0 {
				return ret
			}
			i += len(da)
			j += len(db)
			continue
		}
		if a[i] != b[j] {
			return int(a[i]) - int(b[j])
		}
		i++
		j++
	}
	return (len(a) - i) - (len(b) - j)
}

// ExtensionCompare orders by the substring after the last dot that is not
// the first character of the name. Entries without an extension sort
// before entries with one; the comparison is case-insensitive.
func ExtensionCompare(a, b string) int {
	ea := extensionOf(a)
	eb := extensionOf(b)

	switch {
	case ea == "" && eb == "":
		return 0
	case ea == "":
		return -1
	case eb == "":
		return 1
	}
	return strings.Compare(strings.ToLower(ea), strings.ToLower(eb))
}

func extensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		// No dot, or the dot is the first character (hidden file).
		return ""
	}
	return name[i+1:]
}

// Alphasort is a plain byte-order comparison with the reverse flag
// applied, matching the platform alphabetic scan order.
func Alphasort(a, b string, reverse bool) int {
	ret := strings.Compare(a, b)
	if reverse {
		return -ret
	}
	return ret
}

// AlphasortInsensitive compares case-insensitively, ignoring the leading
// dot of hidden names.
func AlphasortInsensitive(a, b string, reverse bool) int {
	ret := strings.Compare(
		strings.ToLower(strings.TrimPrefix(a, ".")),
		strings.ToLower(strings.TrimPrefix(b, ".")),
	)
	if reverse {
		return -ret
	}
	return ret
}

func compareDirs(a, b bool) int {
	if a == b {
		return 0
	}
	if b {
		return 1
	}
	return -1
}

func compareInt64(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func compareUint64(a, b uint64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func compareTime(a, b time.Time) int {
	switch {
	case a.After(b):
		return 1
	case a.Before(b):
		return -1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
