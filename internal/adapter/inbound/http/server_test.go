package http_handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anikan666/pirate-lab/internal/config"
	"github.com/anikan666/pirate-lab/internal/port"
)

type fakeLibrary struct {
	history  []port.HistoryEntry
	saved    map[string][]byte
	playback port.Playback
	err      error
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{saved: make(map[string][]byte)}
}

func (f *fakeLibrary) History(ctx context.Context) []port.HistoryEntry { return f.history }

func (f *fakeLibrary) SaveSpeech(ctx context.Context, audio []byte, ext string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved["speech_20240101_120000_ab12cd34"+ext] = audio
	return "speech_20240101_120000_ab12cd34" + ext, nil
}

func (f *fakeLibrary) SaveTemp(ctx context.Context, audio []byte, ext string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved["temp_ab12cd34"+ext] = audio
	return "temp_ab12cd34" + ext, nil
}

func (f *fakeLibrary) Fetch(ctx context.Context, name string) ([]byte, error) {
	audio, ok := f.saved[name]
	if !ok {
		return nil, port.ErrNotFound
	}
	return audio, nil
}

func (f *fakeLibrary) Delete(ctx context.Context, name string) error {
	if _, ok := f.saved[name]; !ok {
		return port.ErrNotFound
	}
	delete(f.saved, name)
	return nil
}

func (f *fakeLibrary) Rename(ctx context.Context, name, newStem string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return newStem + ".mp3", nil
}

func (f *fakeLibrary) ResolvePlayback(ctx context.Context, name string) (port.Playback, error) {
	if f.err != nil {
		return port.Playback{}, f.err
	}
	return f.playback, nil
}

type fakeSynth struct {
	audio []byte
	err   error
}

func (f *fakeSynth) Voices(ctx context.Context) ([]port.Voice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []port.Voice{{ID: "en-US-GuyNeural", Locale: "en-US", Gender: "Male"}}, nil
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, voiceID string, rate, volume int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func newTestServer(library port.SpeechLibrary, synth port.Synthesizer) *Server {
	cfg := config.DefaultConfig()
	return NewServer(cfg, library, synth)
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func TestHandleSpeak(t *testing.T) {
	library := newFakeLibrary()
	server := newTestServer(library, &fakeSynth{audio: []byte("mp3 bytes")})

	payload := `{"text":"ahoy there","voice_id":"en-US-GuyNeural","rate":150,"volume":100}`
	req := httptest.NewRequest("POST", "/api/speak", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	tempFile, _ := body["temp_file"].(string)
	if !strings.HasPrefix(tempFile, "temp_") {
		t.Fatalf("temp_file = %q", tempFile)
	}
	if url, _ := body["audio_url"].(string); url != "/api/play/"+tempFile {
		t.Fatalf("audio_url = %q", url)
	}
	if !bytes.Equal(library.saved[tempFile], []byte("mp3 bytes")) {
		t.Fatal("synthesized audio was not stored")
	}
}

func TestHandleSpeakValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"EmptyBody", ``},
		{"MissingText", `{"voice_id":"en-US-GuyNeural"}`},
		{"TextTooLong", `{"text":"` + strings.Repeat("a", 6000) + `","voice_id":"en-US-GuyNeural"}`},
		{"BadVoice", `{"text":"hello","voice_id":"bad voice!"}`},
	}

	server := newTestServer(newFakeLibrary(), &fakeSynth{audio: []byte("x")})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/speak", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			resp, err := server.app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != 400 {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHandleSaveReportsExpiry(t *testing.T) {
	server := newTestServer(newFakeLibrary(), &fakeSynth{audio: []byte("x")})

	payload := `{"text":"save me","voice_id":"en-US-GuyNeural"}`
	req := httptest.NewRequest("POST", "/api/save", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp.Body)
	if file, _ := body["file"].(string); !strings.HasPrefix(file, "speech_") {
		t.Fatalf("file = %q", file)
	}
	if secs, _ := body["expires_in_seconds"].(float64); secs != 3600 {
		t.Fatalf("expires_in_seconds = %v", secs)
	}
}

func TestSynthesisFailureIsGeneric(t *testing.T) {
	server := newTestServer(newFakeLibrary(), &fakeSynth{err: errors.New("wss handshake: token rejected")})

	payload := `{"text":"hello","voice_id":"en-US-GuyNeural"}`
	req := httptest.NewRequest("POST", "/api/speak", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	body := decodeBody(t, resp.Body)
	// Internal cause stays in the logs.
	if msg, _ := body["message"].(string); strings.Contains(msg, "token") {
		t.Fatalf("internal error leaked to client: %q", msg)
	}
}

func TestHandlePlayRedirect(t *testing.T) {
	library := newFakeLibrary()
	library.playback = port.Playback{RedirectURL: "https://bucket.example/audio/a.mp3?sig=x"}
	server := newTestServer(library, &fakeSynth{})

	req := httptest.NewRequest("GET", "/api/play/a.mp3", nil)
	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp.Body)
	if body["status"] != "redirect" {
		t.Fatalf("status field = %v", body["status"])
	}
	if body["url"] != library.playback.RedirectURL {
		t.Fatalf("url = %v", body["url"])
	}
}

func TestHandlePlayInvalidFilename(t *testing.T) {
	server := newTestServer(newFakeLibrary(), &fakeSynth{})

	req := httptest.NewRequest("GET", "/api/play/evil.exe", nil)
	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleDelete(t *testing.T) {
	library := newFakeLibrary()
	library.saved["gone.mp3"] = []byte("x")
	server := newTestServer(library, &fakeSynth{})

	req := httptest.NewRequest("DELETE", "/api/delete/gone.mp3", nil)
	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if _, ok := library.saved["gone.mp3"]; ok {
		t.Fatal("file not deleted")
	}

	// Second delete: the file is absent now.
	resp, err = server.app.Test(httptest.NewRequest("DELETE", "/api/delete/gone.mp3", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleRenameValidation(t *testing.T) {
	server := newTestServer(newFakeLibrary(), &fakeSynth{})

	req := httptest.NewRequest("POST", "/api/rename/a.mp3", strings.NewReader(`{"new_name":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleConfig(t *testing.T) {
	server := newTestServer(newFakeLibrary(), &fakeSynth{})

	resp, err := server.app.Test(httptest.NewRequest("GET", "/api/config", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body := decodeBody(t, resp.Body)
	if body["storage_type"] != "local" {
		t.Fatalf("storage_type = %v", body["storage_type"])
	}
	if body["file_max_age_seconds"].(float64) != 3600 {
		t.Fatalf("file_max_age_seconds = %v", body["file_max_age_seconds"])
	}
}

func TestSanitizeText(t *testing.T) {
	if got := sanitizeText("  hello <b>world</b>  "); got != "hello &lt;b&gt;world&lt;/b&gt;" {
		t.Fatalf("sanitizeText = %q", got)
	}
	if sanitizeText("   ") != "" {
		t.Fatal("blank text not rejected")
	}
	if sanitizeText(strings.Repeat("a", maxTextLength+1)) != "" {
		t.Fatal("oversized text not rejected")
	}
}

func TestValidVoiceID(t *testing.T) {
	if !validVoiceID("en-US-GuyNeural") {
		t.Fatal("valid voice rejected")
	}
	if validVoiceID("") || validVoiceID("bad voice") || validVoiceID(strings.Repeat("a", 101)) {
		t.Fatal("invalid voice accepted")
	}
}

func TestClamp(t *testing.T) {
	n := 500
	if got := clamp(&n, 50, 300, 150); got != 300 {
		t.Fatalf("clamp high = %d", got)
	}
	n = 10
	if got := clamp(&n, 50, 300, 150); got != 50 {
		t.Fatalf("clamp low = %d", got)
	}
	if got := clamp(nil, 50, 300, 150); got != 150 {
		t.Fatalf("clamp default = %d", got)
	}
}
