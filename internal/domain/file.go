package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TempPrefix marks short-lived artifacts excluded from user listings.
	TempPrefix = "temp_"

	// MaxFilenameLength bounds user-supplied names.
	MaxFilenameLength = 100
)

// FileRecord describes one stored audio artifact.
type FileRecord struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	// Created is seconds since epoch. Listings are ordered by it, newest first.
	Created int64 `json:"created"`
}

// Age returns how long ago the record was created relative to now.
func (r FileRecord) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(r.Created, 0))
}

// IsTemp reports whether the record follows the transient naming convention.
func (r FileRecord) IsTemp() bool {
	return strings.HasPrefix(r.Filename, TempPrefix)
}

// IsAudioFilename reports whether name carries a recognized audio extension.
func IsAudioFilename(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3", ".wav":
		return true
	}
	return false
}

// ContentTypeFor maps a filename to its audio MIME type.
func ContentTypeFor(name string) string {
	if strings.ToLower(filepath.Ext(name)) == ".wav" {
		return "audio/wav"
	}
	return "audio/mpeg"
}

// NewSpeechFilename generates a persisted artifact name:
// speech_<yyyymmdd_hhmmss>_<random8hex>.<ext>.
func NewSpeechFilename(now time.Time, ext string) string {
	return fmt.Sprintf("speech_%s_%s%s", now.Format("20060102_150405"), randomSuffix(), normalizeExt(ext))
}

// NewTempFilename generates a transient artifact name: temp_<random8hex>.<ext>.
func NewTempFilename(ext string) string {
	return TempPrefix + randomSuffix() + normalizeExt(ext)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext != ".wav" {
		ext = ".mp3"
	}
	return ext
}

// SanitizeFilename reduces a user-supplied name to a safe leaf name:
// path components stripped, length capped, extension restricted to mp3/wav,
// stem restricted to alphanumerics, space, dash and underscore.
// Returns false when nothing safe remains.
func SanitizeFilename(name string) (string, bool) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) || len(name) > MaxFilenameLength {
		return "", false
	}
	ext := filepath.Ext(name)
	if !IsAudioFilename(name) {
		return "", false
	}
	stem, ok := SanitizeStem(strings.TrimSuffix(name, ext))
	if !ok {
		return "", false
	}
	return stem + strings.ToLower(ext), true
}

// SanitizeStem filters an extensionless name down to its safe characters.
func SanitizeStem(stem string) (string, bool) {
	var b strings.Builder
	for _, c := range stem {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ', c == '-', c == '_':
			b.WriteRune(c)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", false
	}
	return out, true
}
