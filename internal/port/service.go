package port

import (
	"context"
	"errors"

	"github.com/anikan666/pirate-lab/internal/domain"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrNameTaken     = errors.New("a file with that name already exists")
	ErrInvalidName   = errors.New("invalid filename")
	ErrStorageFailed = errors.New("storage operation failed")
)

// HistoryEntry is a listed file annotated with its remaining lifetime under
// the retention window.
type HistoryEntry struct {
	domain.FileRecord
	ExpiresInSeconds int64 `json:"expires_in_seconds"`
	ExpiresInMinutes int64 `json:"expires_in_minutes"`
}

// Playback tells a handler how to serve a file: redirect to an external URL
// (object store) or stream a local path.
type Playback struct {
	RedirectURL string
	LocalPath   string
}

// SpeechLibrary is the use-case surface the HTTP layer talks to. Handlers
// never touch a FileStore or storage SDK directly.
type SpeechLibrary interface {
	// History lists persisted (non-temp) files, newest first, annotated
	// with time until expiry.
	History(ctx context.Context) []HistoryEntry

	// SaveSpeech stores audio under a generated speech_ name and returns it.
	SaveSpeech(ctx context.Context, audio []byte, ext string) (string, error)

	// SaveTemp stores audio under a generated temp_ name and returns it.
	SaveTemp(ctx context.Context, audio []byte, ext string) (string, error)

	// Fetch returns file content, served from the playback cache when warm.
	Fetch(ctx context.Context, name string) ([]byte, error)

	// Delete removes a file. ErrNotFound when it did not exist.
	Delete(ctx context.Context, name string) error

	// Rename gives an existing file a new user-chosen stem, keeping its
	// extension. Rejects targets that already exist under a different name.
	// Returns the final filename.
	Rename(ctx context.Context, name, newStem string) (string, error)

	// ResolvePlayback decides how a file should be served.
	ResolvePlayback(ctx context.Context, name string) (Playback, error)
}

// Voice describes one synthesizer voice.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Locale      string `json:"locale"`
	Gender      string `json:"gender"`
}

// Synthesizer converts text to audio through an external speech service.
type Synthesizer interface {
	// Voices returns the available voice catalog.
	Voices(ctx context.Context) ([]Voice, error)

	// Synthesize renders text with the given voice. Rate is words per
	// minute in [50,300], volume a percentage in [0,100]. Returns MP3 bytes.
	Synthesize(ctx context.Context, text, voiceID string, rate, volume int) ([]byte, error)
}
