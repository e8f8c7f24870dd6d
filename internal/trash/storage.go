// Package trash implements the safe deletion and restoration subsystem:
// payloads are relocated into a files area with a metadata sidecar in an
// info area, and can be restored to their original location or erased.
package trash

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/suteru/suteru/internal/fs"
	"github.com/suteru/suteru/internal/ordering"
	"golang.org/x/sys/unix"
)

// Item is one trashed entry as seen by a listing pass. The ELN a caller
// assigns to it is valid only for that pass.
type Item struct {
	// Name is the trashed item name (basename plus timestamp suffix).
	Name string

	// TrashPath is the payload location inside the files area.
	TrashPath string

	// OriginalPath is the decoded path from the sidecar, empty when the
	// sidecar is missing or unreadable.
	OriginalPath string

	// DeletedAt is the sidecar deletion date, zero when unavailable.
	DeletedAt time.Time

	// Entry carries the metadata the comparator consults.
	Entry ordering.Entry
}

// Storage owns one trash holding area. Its configuration is fixed at
// construction; operations never mutate it.
type Storage struct {
	dirs   Dirs
	cmp    *ordering.Comparator
	filter ScanFilter
	key    ordering.Key
	light  bool
}

// NewStorage prepares the holding area and returns a Storage over it.
func NewStorage(cfg Config) (*Storage, error) {
	if err := cfg.Dirs.Ensure(); err != nil {
		return nil, err
	}
	if err := cfg.Filter.Compile(); err != nil {
		return nil, err
	}
	return &Storage{
		dirs:   cfg.Dirs,
		cmp:    ordering.NewComparator(cfg.Ordering),
		filter: cfg.Filter,
		key:    cfg.Ordering.Key,
		light:  cfg.Ordering.LightMode,
	}, nil
}

// Dirs exposes the holding area layout.
func (s *Storage) Dirs() Dirs { return s.dirs }

// Put relocates path into the files area and writes its metadata record.
// On success it returns the trashed item name. Any failure after the
// payload move attempts to undo the move so no half-trashed item remains.
func (s *Storage) Put(path string) (string, error) {
	// A trailing separator changes symlink-vs-target semantics in the
	// underlying rename, so strip it before anything else.
	if len(path) > 1 {
		path = strings.TrimSuffix(path, string(os.PathSeparator))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", NewStorageError("put", path, err)
	}

	if err := s.guardTrashPath(abs); err != nil {
		return "", err
	}

	if err := CanRelocate(abs); err != nil {
		return "", err
	}

	now := time.Now()
	base := filepath.Base(abs)
	name := itemName(base, now)
	if s.nameTaken(name) {
		name = disambiguate(base, now)
	}

	dst := s.dirs.FilePath(name)
	if err := fs.Move(abs, dst, fs.MoveOptions{AllowCrossDev: true}); err != nil {
		if errors.Is(err, fs.ErrSourceNotFound) {
			return "", NewStorageError("put", abs, ErrNotFound)
		}
		var mvErr *fs.MoveError
		if errors.As(err, &mvErr) && mvErr.Op == "fallback" {
			return "", NewStorageError("put", abs, fmt.Errorf("%w: %v", ErrCrossDevice, err))
		}
		return "", NewStorageError("put", abs, err)
	}

	info := &Info{Path: abs, DeletionDate: now}
	if err := info.Save(s.dirs.InfoPath(name)); err != nil {
		// A payload without a record is a corruption state: undo the
		// move by deleting the just-moved payload, then fail the Put.
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return "", NewStorageError("put", abs, fmt.Errorf(
				"failed to save trash info: %v; cleanup of orphaned payload %s also failed: %v",
				err, dst, rmErr))
		}
		return "", NewStorageError("put", abs, fmt.Errorf("failed to save trash info: %w", err))
	}

	slog.Debug("trashed", "path", abs, "name", name)
	return name, nil
}

// guardTrashPath rejects trashing the holding area itself, any of its
// ancestors, or anything already inside it.
func (s *Storage) guardTrashPath(abs string) error {
	root := filepath.Clean(s.dirs.Root)
	target := filepath.Clean(abs)

	if target == root || isUnder(root, target) {
		return NewStorageError("put", abs,
			errors.New("cannot trash the trash directory or its ancestors"))
	}
	if isUnder(target, root) {
		return NewStorageError("put", abs,
			errors.New("already trashed; use 'del' to remove trashed files"))
	}
	return nil
}

// isUnder reports whether path lies strictly below dir.
func isUnder(path, dir string) bool {
	return strings.HasPrefix(path, dir+string(os.PathSeparator))
}

func (s *Storage) nameTaken(name string) bool {
	if _, err := os.Lstat(s.dirs.FilePath(name)); err == nil {
		return true
	}
	if _, err := os.Lstat(s.dirs.InfoPath(name)); err == nil {
		return true
	}
	return false
}

// Restore moves a trashed item back to its original location and removes
// the metadata record. It never overwrites an existing destination.
func (s *Storage) Restore(name string) error {
	infoPath := s.dirs.InfoPath(name)
	info, err := LoadInfo(infoPath)
	if err != nil {
		if IsNotFound(err) {
			// Payload without a record is an orphan: corruption, not a
			// simple lookup miss.
			return NewStorageError("restore", name,
				fmt.Errorf("%w: metadata record missing", ErrCorruptMetadata))
		}
		return NewStorageError("restore", name, err)
	}

	trashPath := s.dirs.FilePath(name)
	if _, err := os.Lstat(trashPath); err != nil {
		return NewStorageError("restore", name,
			fmt.Errorf("%w: payload missing from files area", ErrNotFound))
	}

	dst := info.Path
	parent := parentDir(dst)
	if _, err := os.Stat(parent); err != nil {
		return NewStorageError("restore", dst,
			fmt.Errorf("%w: destination parent: %v", ErrNotFound, err))
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return NewStorageError("restore", parent,
			fmt.Errorf("%w: %v", ErrPermissionDenied, err))
	}

	if _, err := os.Lstat(dst); err == nil {
		return NewStorageError("restore", dst, ErrAlreadyExists)
	}

	if err := fs.Move(trashPath, dst, fs.MoveOptions{AllowCrossDev: true, Force: true}); err != nil {
		return NewStorageError("restore", dst, err)
	}

	if err := os.Remove(infoPath); err != nil {
		// The payload is already correctly restored; surface the
		// cleanup failure without suggesting data loss.
		return NewStorageError("restore", infoPath,
			fmt.Errorf("%w: %v", ErrSidecarCleanup, err))
	}

	slog.Debug("restored", "name", name, "to", dst)
	return nil
}

// Erase permanently removes a trashed item's payload and metadata as a
// unit. A missing half is an error naming which half is gone, since a
// half-erased item signals a consistency bug elsewhere.
func (s *Storage) Erase(name string) error {
	trashPath := s.dirs.FilePath(name)
	infoPath := s.dirs.InfoPath(name)

	var missing []string
	if _, err := os.Lstat(trashPath); err != nil {
		missing = append(missing, "payload")
	}
	if _, err := os.Lstat(infoPath); err != nil {
		missing = append(missing, "metadata record")
	}
	if len(missing) > 0 {
		return NewStorageError("erase", name,
			fmt.Errorf("%w: %s missing", ErrNotFound, strings.Join(missing, " and ")))
	}

	if err := fs.RemoveTree(trashPath, infoPath); err != nil {
		// rm(1) removes the pair as one external unit when the native
		// walk cannot.
		if execErr := fs.RemoveTreeExec(trashPath, infoPath); execErr != nil {
			return NewStorageError("erase", name,
				fmt.Errorf("%v; rm: %v", err, execErr))
		}
	}

	slog.Debug("erased", "name", name)
	return nil
}

// EraseAll erases every listed item in listing order, accumulating
// per-item failures instead of aborting early. It returns the number of
// items actually erased.
func (s *Storage) EraseAll() (int, error) {
	items, err := s.List()
	if err != nil {
		return 0, err
	}

	var erased int
	var errs []error
	for _, item := range items {
		if err := s.Erase(item.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		erased++
	}
	return erased, errors.Join(errs...)
}

// Count returns the number of currently trashed items.
func (s *Storage) Count() (int, error) {
	entries, err := os.ReadDir(s.dirs.Files)
	if err != nil {
		return 0, NewStorageError("count", s.dirs.Files, err)
	}
	return len(entries), nil
}

// List snapshots the files area, filtered and ordered. The scan runs
// with the working directory temporarily moved into the files area; the
// prior working directory is restored on every exit path, and a failed
// restore is itself an error since later operations depend on it.
func (s *Storage) List() (items []Item, err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, NewStorageError("list", "", fmt.Errorf("failed to get working directory: %w", err))
	}
	if err := os.Chdir(s.dirs.Files); err != nil {
		return nil, NewStorageError("list", s.dirs.Files, err)
	}
	defer func() {
		if cdErr := os.Chdir(prev); cdErr != nil {
			cdErr = NewStorageError("list", prev,
				fmt.Errorf("failed to restore working directory: %w", cdErr))
			if err == nil {
				err = cdErr
			} else {
				err = fmt.Errorf("%v; additionally: %v", err, cdErr)
			}
		}
	}()

	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, NewStorageError("list", s.dirs.Files, err)
	}

	ordered := make([]ordering.Entry, 0, len(entries))
	for _, entry := range entries {
		if s.filter.Skip(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			slog.Debug("skipping unreadable entry", "name", entry.Name(), "error", err)
			continue
		}
		oe := ordering.Entry{
			Name:  entry.Name(),
			Size:  fi.Size(),
			Time:  fi.ModTime(),
			IsDir: entry.IsDir(),
		}
		if !s.light {
			fillSysEntry(&oe, fi, s.key)
		}
		ordered = append(ordered, oe)
	}

	s.cmp.Sort(ordered)

	for _, oe := range ordered {
		item := Item{
			Name:      oe.Name,
			TrashPath: s.dirs.FilePath(oe.Name),
			Entry:     oe,
		}
		if info, err := LoadInfo(s.dirs.InfoPath(oe.Name)); err == nil {
			item.OriginalPath = info.Path
			item.DeletedAt = info.DeletionDate
		}
		if s.filter.SkipItem(item) {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}
