package trash

import "errors"

// Error kinds shared across the engine. Batch operations never abort on a
// single item's failure; these sentinels classify each item's outcome.
var (
	// ErrNotFound is returned when a path or trashed item cannot be found.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when a direct or recursive
	// permission check fails.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrImmutable is returned when the immutability attribute is set.
	ErrImmutable = errors.New("file is immutable")

	// ErrUnsupportedType is returned for block and character devices.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrCrossDevice marks a relocation across storage devices. It
	// triggers the fallback and only surfaces when that fails too.
	ErrCrossDevice = errors.New("cross-device operation")

	// ErrAlreadyExists is returned when a restore destination is occupied.
	ErrAlreadyExists = errors.New("destination file exists")

	// ErrCorruptMetadata is returned for an unreadable or unparseable
	// metadata record, or one whose path decodes to empty or relative.
	ErrCorruptMetadata = errors.New("corrupt trash metadata")

	// ErrInvalidSelection is returned for malformed interactive input.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrSidecarCleanup is returned when the payload was restored but the
	// metadata record could not be removed afterwards. The payload is
	// intact; callers must not treat this as data loss.
	ErrSidecarCleanup = errors.New("restored, but failed to remove trash metadata")
)

// StorageError wraps an error with the storage operation and path that
// produced it.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError creates a new StorageError.
func NewStorageError(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}

func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }
func IsImmutable(err error) bool        { return errors.Is(err, ErrImmutable) }
func IsUnsupportedType(err error) bool  { return errors.Is(err, ErrUnsupportedType) }
func IsAlreadyExists(err error) bool    { return errors.Is(err, ErrAlreadyExists) }
func IsCorruptMetadata(err error) bool  { return errors.Is(err, ErrCorruptMetadata) }
