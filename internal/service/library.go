package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/anikan666/pirate-lab/internal/domain"
	"github.com/anikan666/pirate-lab/internal/port"
	"github.com/anthanhphan/gosdk/logger"
	lru "github.com/hashicorp/golang-lru/v2"
)

// playbackCacheSize bounds the in-process audio cache.
const playbackCacheSize = 100

// LibraryImpl is the use-case layer between HTTP handlers and the storage
// backend. It owns filename generation, the rename policy, expiry
// annotations and a bounded playback cache in front of backend reads.
type LibraryImpl struct {
	store      port.FileStore
	maxAge     time.Duration
	serveLocal bool
	cache      *lru.Cache[string, []byte]
}

var _ port.SpeechLibrary = (*LibraryImpl)(nil)

// NewLibrary builds the library service over a backend. serveLocal marks
// backends whose files can be streamed straight off disk.
func NewLibrary(store port.FileStore, maxAge time.Duration, serveLocal bool) *LibraryImpl {
	// Only errors on a non-positive size.
	cache, _ := lru.New[string, []byte](playbackCacheSize)
	return &LibraryImpl{
		store:      store,
		maxAge:     maxAge,
		serveLocal: serveLocal,
		cache:      cache,
	}
}

// History lists persisted files, newest first, annotated with the time left
// under the retention window.
func (l *LibraryImpl) History(ctx context.Context) []port.HistoryEntry {
	now := time.Now()
	files := l.store.List(ctx, domain.TempPrefix)

	entries := make([]port.HistoryEntry, 0, len(files))
	for _, file := range files {
		remaining := l.maxAge - file.Age(now)
		if remaining < 0 {
			remaining = 0
		}
		entries = append(entries, port.HistoryEntry{
			FileRecord:       file,
			ExpiresInSeconds: int64(remaining.Seconds()),
			ExpiresInMinutes: int64(remaining.Minutes()),
		})
	}
	return entries
}

// SaveSpeech stores audio under a generated speech_ name.
func (l *LibraryImpl) SaveSpeech(ctx context.Context, audio []byte, ext string) (string, error) {
	return l.save(ctx, domain.NewSpeechFilename(time.Now(), ext), audio)
}

// SaveTemp stores audio under a generated temp_ name.
func (l *LibraryImpl) SaveTemp(ctx context.Context, audio []byte, ext string) (string, error) {
	return l.save(ctx, domain.NewTempFilename(ext), audio)
}

func (l *LibraryImpl) save(ctx context.Context, name string, audio []byte) (string, error) {
	if !l.store.Save(ctx, name, audio) {
		return "", port.ErrStorageFailed
	}
	// Overwrite of a cached name must not serve stale bytes.
	l.cache.Remove(name)
	return name, nil
}

// Fetch returns file content, preferring the playback cache. Repeated
// playback of the same file otherwise costs one backend round trip each.
func (l *LibraryImpl) Fetch(ctx context.Context, name string) ([]byte, error) {
	if audio, ok := l.cache.Get(name); ok {
		return audio, nil
	}
	audio, ok := l.store.Get(ctx, name)
	if !ok {
		return nil, port.ErrNotFound
	}
	l.cache.Add(name, audio)
	return audio, nil
}

// Delete removes a file and drops it from the cache.
func (l *LibraryImpl) Delete(ctx context.Context, name string) error {
	l.cache.Remove(name)
	if !l.store.Delete(ctx, name) {
		return port.ErrNotFound
	}
	return nil
}

// Rename applies the caller-level policy on top of the backend's permissive
// rename: the new stem is sanitized, the old extension is kept, and a target
// that already exists under a different name is rejected here rather than
// overwritten by the backend's copy-then-delete.
func (l *LibraryImpl) Rename(ctx context.Context, name, newStem string) (string, error) {
	if !l.store.Exists(ctx, name) {
		return "", port.ErrNotFound
	}

	stem, ok := domain.SanitizeStem(newStem)
	if !ok || len(stem) > domain.MaxFilenameLength {
		return "", port.ErrInvalidName
	}
	newName := stem + strings.ToLower(filepath.Ext(name))

	if newName != name && l.store.Exists(ctx, newName) {
		return "", port.ErrNameTaken
	}

	if !l.store.Rename(ctx, name, newName) {
		logger.Warnw("Rename failed", "from", name, "to", newName)
		return "", port.ErrStorageFailed
	}
	l.cache.Remove(name)
	l.cache.Remove(newName)
	return newName, nil
}

// ResolvePlayback decides how a file is served: a local path when the
// backend lives on disk, otherwise the backend's access URL (a presigned
// URL on an object store).
func (l *LibraryImpl) ResolvePlayback(ctx context.Context, name string) (port.Playback, error) {
	if l.serveLocal {
		if resolver, ok := l.store.(port.PathResolver); ok {
			if path, ok := resolver.FilePath(name); ok {
				return port.Playback{LocalPath: path}, nil
			}
			return port.Playback{}, port.ErrNotFound
		}
	}
	if url, ok := l.store.AccessURL(ctx, name); ok {
		return port.Playback{RedirectURL: url}, nil
	}
	return port.Playback{}, port.ErrNotFound
}
