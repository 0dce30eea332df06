// Package edgetts talks to the Microsoft Edge read-aloud speech service:
// a JSON voice catalog over HTTPS and neural synthesis over a WebSocket
// that streams binary audio frames.
package edgetts

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anikan666/pirate-lab/internal/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

	voicesURL = "https://speech.platform.bing.com/consumer/speech/synthesize/" +
		"readaloud/voices/list?trustedclienttoken=" + trustedClientToken

	synthURL = "wss://speech.platform.bing.com/consumer/speech/synthesize/" +
		"readaloud/edge/v1?TrustedClientToken=" + trustedClientToken

	outputFormat = "audio-24khz-48kbitrate-mono-mp3"

	origin    = "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"
)

// Client implements port.Synthesizer against the Edge speech service. The
// voice catalog is fetched once and kept for the process lifetime.
type Client struct {
	httpClient *http.Client
	dialer     *websocket.Dialer

	mu     sync.Mutex
	voices []port.Voice
}

var _ port.Synthesizer = (*Client)(nil)

// NewClient returns a synthesizer with sane network timeouts.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		dialer: &websocket.Dialer{
			HandshakeTimeout: 15 * time.Second,
		},
	}
}

type edgeVoice struct {
	Name         string `json:"Name"`
	ShortName    string `json:"ShortName"`
	Gender       string `json:"Gender"`
	Locale       string `json:"Locale"`
	FriendlyName string `json:"FriendlyName"`
}

// Voices returns the catalog, fetching it on first use.
func (c *Client) Voices(ctx context.Context) ([]port.Voice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.voices != nil {
		return c.voices, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, voicesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build voices request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voices request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voices request failed: status %d", resp.StatusCode)
	}

	var raw []edgeVoice
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode voices: %w", err)
	}

	voices := make([]port.Voice, 0, len(raw))
	for _, v := range raw {
		display := v.FriendlyName
		if display == "" {
			display = v.ShortName
		}
		voices = append(voices, port.Voice{
			ID:          v.ShortName,
			Name:        fmt.Sprintf("%s (%s)", v.ShortName, v.Locale),
			DisplayName: display,
			Locale:      v.Locale,
			Gender:      v.Gender,
		})
	}

	c.voices = voices
	logger.Infow("Edge voice catalog loaded", "count", len(voices))
	return voices, nil
}

// Synthesize renders text over the synthesis WebSocket: one speech.config
// message, one SSML message, then binary audio frames until turn.end.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string, rate, volume int) ([]byte, error) {
	header := http.Header{}
	header.Set("Origin", origin)
	header.Set("User-Agent", userAgent)

	connURL := synthURL + "&ConnectionId=" + connectionID()
	conn, resp, err := c.dialer.DialContext(ctx, connURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("synthesis dial failed: status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("synthesis dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
		_ = conn.SetWriteDeadline(deadline)
	} else {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		_ = conn.SetWriteDeadline(time.Now().Add(60 * time.Second))
	}

	if err := conn.WriteMessage(websocket.TextMessage, speechConfigMessage()); err != nil {
		return nil, fmt.Errorf("failed to send speech config: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, ssmlMessage(text, voiceID, rate, volume)); err != nil {
		return nil, fmt.Errorf("failed to send ssml: %w", err)
	}

	var audio bytes.Buffer
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("synthesis stream failed: %w", err)
		}

		switch msgType {
		case websocket.TextMessage:
			if strings.Contains(string(data), "Path:turn.end") {
				if audio.Len() == 0 {
					return nil, fmt.Errorf("no audio generated")
				}
				return audio.Bytes(), nil
			}
		case websocket.BinaryMessage:
			payload, ok := audioPayload(data)
			if ok {
				audio.Write(payload)
			}
		}
	}
}

// audioPayload strips the binary frame header: two big-endian length bytes,
// the header itself, then raw audio. Frames without Path:audio carry none.
func audioPayload(frame []byte) ([]byte, bool) {
	if len(frame) < 2 {
		return nil, false
	}
	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if len(frame) < 2+headerLen {
		return nil, false
	}
	if !bytes.Contains(frame[2:2+headerLen], []byte("Path:audio")) {
		return nil, false
	}
	return frame[2+headerLen:], true
}

func speechConfigMessage() []byte {
	payload := `{"context":{"synthesis":{"audio":{"metadataoptions":` +
		`{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},` +
		`"outputFormat":"` + outputFormat + `"}}}}`
	return []byte("X-Timestamp:" + timestamp() + "\r\n" +
		"Content-Type:application/json; charset=utf-8\r\n" +
		"Path:speech.config\r\n\r\n" + payload)
}

func ssmlMessage(text, voiceID string, rate, volume int) []byte {
	// The UI speaks in words per minute around a 150 baseline and a 0-100
	// volume slider; the service wants signed percentages.
	ratePct := (rate - 150) / 3
	volPct := volume - 50

	ssml := fmt.Sprintf("<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>"+
		"<voice name='%s'><prosody pitch='+0Hz' rate='%+d%%' volume='%+d%%'>%s</prosody></voice></speak>",
		voiceID, ratePct, volPct, text)

	return []byte("X-RequestId:" + connectionID() + "\r\n" +
		"Content-Type:application/ssml+xml\r\n" +
		"X-Timestamp:" + timestamp() + "\r\n" +
		"Path:ssml\r\n\r\n" + ssml)
}

func connectionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func timestamp() string {
	return time.Now().UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}
