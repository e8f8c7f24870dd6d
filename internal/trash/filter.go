package trash

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	units "github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
	"github.com/suteru/suteru/internal/fs"
)

// ScanFilter decides which directory entries a scan of the files area
// keeps. Dot entries are always skipped; hidden entries and exclusion
// rules depend on configuration.
type ScanFilter struct {
	ShowHidden bool

	// ExcludeFiles are exact names to skip.
	ExcludeFiles []string

	// ExcludeGlobs are glob patterns to skip.
	ExcludeGlobs []string

	// ExcludePatterns are regular expressions to skip.
	ExcludePatterns []string

	// MinSize and MaxSize bound items by human-readable size ("10MB").
	// Empty means unbounded.
	MinSize string
	MaxSize string

	// WithinDays keeps only items deleted within the period; zero keeps
	// everything.
	WithinDays int

	globs    []glob.Glob
	patterns []*regexp.Regexp
}

// Compile pre-compiles glob and regexp rules. Invalid rules are an error
// so a typo in the config never silently widens the scan.
func (f *ScanFilter) Compile() error {
	f.globs = f.globs[:0]
	for _, g := range f.ExcludeGlobs {
		compiled, err := glob.Compile(g)
		if err != nil {
			return fmt.Errorf("invalid exclude glob %q: %w", g, err)
		}
		f.globs = append(f.globs, compiled)
	}

	f.patterns = f.patterns[:0]
	for _, p := range f.ExcludePatterns {
		compiled, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, compiled)
	}
	return nil
}

// Skip reports whether a directory entry must be excluded from the scan.
func (f *ScanFilter) Skip(name string) bool {
	if name == "." || name == ".." {
		return true
	}
	if !f.ShowHidden && name[0] == '.' {
		return true
	}
	for _, exclude := range f.ExcludeFiles {
		if name == exclude {
			return true
		}
	}
	for _, g := range f.globs {
		if g.Match(name) {
			return true
		}
	}
	for _, p := range f.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// SkipItem applies the size and period bounds to a fully resolved item.
func (f *ScanFilter) SkipItem(item Item) bool {
	if f.MinSize != "" || f.MaxSize != "" {
		size, err := fs.DirSize(item.TrashPath)
		if err != nil {
			slog.Debug("failed to size item, keeping it", "item", item.Name, "error", err)
		} else {
			if f.MinSize != "" {
				if min, err := units.FromHumanSize(f.MinSize); err == nil && size < min {
					return true
				}
			}
			if f.MaxSize != "" {
				if max, err := units.FromHumanSize(f.MaxSize); err == nil && size > max {
					return true
				}
			}
		}
	}

	if f.WithinDays > 0 && !item.DeletedAt.IsZero() {
		d, err := duration.Parse(fmt.Sprintf("%d days", f.WithinDays))
		if err != nil {
			slog.Error("failed to parse period", "error", err)
			return false
		}
		if time.Since(item.DeletedAt) > d {
			return true
		}
	}
	return false
}
