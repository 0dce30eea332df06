package port

import (
	"context"
	"time"

	"github.com/anikan666/pirate-lab/internal/domain"
)

//go:generate mockgen -destination=../service/mocks/storage_mock.go -package=mocks -source=storage.go

// FileStore is the capability set every storage backend implements with
// identical observable behavior. Failures are signaled through the result
// values, never through panics; backends log the underlying cause themselves.
type FileStore interface {
	// Save writes content under name, creating or overwriting. The file is
	// visible to subsequent List/Get/Exists calls; an object-store backend
	// inherits the provider's read-after-write consistency.
	Save(ctx context.Context, name string, content []byte) bool

	// Get returns the full content, or false when the file is absent or
	// unreadable. Never returns partial content.
	Get(ctx context.Context, name string) ([]byte, bool)

	// Delete removes the file. Returns false when the name did not exist.
	// The name does not resolve after the call either way.
	Delete(ctx context.Context, name string) bool

	// Rename makes old stop resolving and new resolve to the same bytes.
	// Returns false with no change when old is absent. The object-store
	// variant is copy-then-delete and may leave both names resolving when
	// the delete half fails; it reports false and callers may re-list.
	Rename(ctx context.Context, oldName, newName string) bool

	// List enumerates files with a recognized audio extension, excluding
	// names with excludePrefix when non-empty, ordered by Created descending.
	List(ctx context.Context, excludePrefix string) []domain.FileRecord

	// Exists reports whether name currently resolves.
	Exists(ctx context.Context, name string) bool

	// AccessURL resolves a read URL for the file: a time-limited presigned
	// URL on an object store, an internal API path on local disk.
	AccessURL(ctx context.Context, name string) (string, bool)
}

// TempCleaner is implemented by backends that can sweep temp_ artifacts on
// their own short threshold.
type TempCleaner interface {
	CleanupTemp(ctx context.Context, maxAge time.Duration)
}

// PathResolver is implemented by the local-disk backend only; it exposes the
// on-disk path so handlers can stream files without buffering.
type PathResolver interface {
	FilePath(name string) (string, bool)
}
