package trash

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/suteru/suteru/internal/fs"
)

const (
	infoHeader = "[Trash Info]"
	infoSuffix = ".trashinfo"
	timeFormat = "2006-01-02T15:04:05"
)

// Info is the metadata record paired with every trashed payload.
type Info struct {
	// Path is the decoded absolute original path of the item.
	Path string

	// DeletionDate is when the item was moved to trash, local time,
	// second precision.
	DeletionDate time.Time
}

// ParseInfo reads a metadata record. The reader is loose: unknown lines
// are skipped and field order does not matter. It fails closed when the
// Path field is missing or decodes to an empty or relative path.
func ParseInfo(r io.Reader) (*Info, error) {
	scanner := bufio.NewScanner(r)
	info := &Info{}
	var pathSeen bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || line == infoHeader {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case "Path":
			path, err := url.QueryUnescape(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid Path encoding: %v", ErrCorruptMetadata, err)
			}
			info.Path = path
			pathSeen = true

		case "DeletionDate":
			date, err := time.ParseInLocation(timeFormat, strings.TrimSpace(value), time.Local)
			if err != nil {
				// Fields are not guaranteed zero-padded; retry loosely.
				date, err = parseLooseDate(strings.TrimSpace(value))
				if err != nil {
					return nil, fmt.Errorf("%w: invalid DeletionDate: %v", ErrCorruptMetadata, err)
				}
			}
			info.DeletionDate = date
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}

	if !pathSeen {
		return nil, fmt.Errorf("%w: missing Path field", ErrCorruptMetadata)
	}
	if info.Path == "" || !filepath.IsAbs(info.Path) {
		return nil, fmt.Errorf("%w: original path %q is not absolute", ErrCorruptMetadata, info.Path)
	}

	return info, nil
}

// parseLooseDate accepts DeletionDate fields without zero padding, e.g.
// 2024-3-7T9:5:1.
func parseLooseDate(s string) (time.Time, error) {
	var year, month, day, hour, min, sec int
	if _, err := fmt.Sscanf(s, "%d-%d-%dT%d:%d:%d", &year, &month, &day, &hour, &min, &sec); err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local), nil
}

// LoadInfo loads and parses a metadata record from path.
func LoadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	defer f.Close()
	return ParseInfo(f)
}

// Save writes the record to path with O_EXCL, refusing to clobber an
// existing record. The writer always emits the documented format.
func (i *Info) Save(path string) error {
	var content strings.Builder
	fmt.Fprintln(&content, infoHeader)
	fmt.Fprintf(&content, "Path=%s\n", encodeTrashPath(i.Path))
	fmt.Fprintf(&content, "DeletionDate=%s\n", i.DeletionDate.Format(timeFormat))

	f, err := fs.CreateExclusive(path, 0600)
	if err != nil {
		return fmt.Errorf("failed to create info file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content.String()); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write info file: %w", err)
	}
	return nil
}

// encodeTrashPath percent-encodes a path per the reserved-character rules
// used by URLs: slashes stay literal and spaces become %20, not +.
func encodeTrashPath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		subparts := strings.Split(part, " ")
		for j, subpart := range subparts {
			subparts[j] = url.QueryEscape(subpart)
		}
		parts[i] = strings.Join(subparts, "%20")
	}
	return strings.Join(parts, "/")
}
