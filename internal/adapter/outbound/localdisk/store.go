package localdisk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/anikan666/pirate-lab/internal/domain"
	"github.com/anikan666/pirate-lab/internal/port"
	"github.com/anthanhphan/gosdk/logger"
)

// Store implements port.FileStore over one flat directory on local disk.
// Names are treated as opaque leaf names joined to the root; single-file
// atomicity is whatever the filesystem provides.
type Store struct {
	rootDir string
}

var (
	_ port.FileStore    = (*Store)(nil)
	_ port.TempCleaner  = (*Store)(nil)
	_ port.PathResolver = (*Store)(nil)
)

// NewStore creates the root directory if needed and returns the backend.
func NewStore(rootDir string) (*Store, error) {
	if err := os.MkdirAll(rootDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{rootDir: filepath.Clean(rootDir)}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.rootDir, name)
}

// Save writes content under name, creating or overwriting.
func (s *Store) Save(_ context.Context, name string, content []byte) bool {
	if err := os.WriteFile(s.path(name), content, 0600); err != nil {
		logger.Warnw("Local save failed", "file", name, "error", err.Error())
		return false
	}
	return true
}

// Get returns the full content or absence.
func (s *Store) Get(_ context.Context, name string) ([]byte, bool) {
	content, err := os.ReadFile(s.path(name)) // #nosec G304 -- name is a sanitized leaf joined to the root
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnw("Local read failed", "file", name, "error", err.Error())
		}
		return nil, false
	}
	return content, true
}

// Delete removes the file, reporting false when it did not exist.
func (s *Store) Delete(_ context.Context, name string) bool {
	if err := os.Remove(s.path(name)); err != nil {
		if !os.IsNotExist(err) {
			logger.Warnw("Local delete failed", "file", name, "error", err.Error())
		}
		return false
	}
	return true
}

// Rename moves old to new in one filesystem call. No change when old is absent.
func (s *Store) Rename(_ context.Context, oldName, newName string) bool {
	if _, err := os.Stat(s.path(oldName)); err != nil {
		return false
	}
	if err := os.Rename(s.path(oldName), s.path(newName)); err != nil {
		logger.Warnw("Local rename failed", "from", oldName, "to", newName, "error", err.Error())
		return false
	}
	return true
}

// List enumerates audio files in the root, newest first. Created is the
// file's modification time.
func (s *Store) List(_ context.Context, excludePrefix string) []domain.FileRecord {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		logger.Warnw("Local list failed", "dir", s.rootDir, "error", err.Error())
		return nil
	}

	files := make([]domain.FileRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !domain.IsAudioFilename(name) {
			continue
		}
		if excludePrefix != "" && strings.HasPrefix(name, excludePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.FileRecord{
			Filename: name,
			Size:     info.Size(),
			Created:  info.ModTime().Unix(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Created > files[j].Created })
	return files
}

// Exists reports whether name resolves to a regular file.
func (s *Store) Exists(_ context.Context, name string) bool {
	info, err := os.Stat(s.path(name))
	return err == nil && info.Mode().IsRegular()
}

// AccessURL returns the internal playback path; local disk has no
// independently reachable URL.
func (s *Store) AccessURL(ctx context.Context, name string) (string, bool) {
	if !s.Exists(ctx, name) {
		return "", false
	}
	return "/api/play/" + name, true
}

// FilePath exposes the on-disk path for zero-copy serving.
func (s *Store) FilePath(name string) (string, bool) {
	p := s.path(name)
	if info, err := os.Stat(p); err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}

// CleanupTemp deletes temp_ files whose modification time is older than maxAge.
func (s *Store) CleanupTemp(_ context.Context, maxAge time.Duration) {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		logger.Warnw("Temp cleanup list failed", "dir", s.rootDir, "error", err.Error())
		return
	}

	now := time.Now()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, domain.TempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
			logger.Warnw("Temp cleanup delete failed", "file", name, "error", err.Error())
		}
	}
}
