package http_handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/anikan666/pirate-lab/internal/config"
	"github.com/anikan666/pirate-lab/internal/domain"
	"github.com/anikan666/pirate-lab/internal/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const maxTextLength = 5000

var voiceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	library port.SpeechLibrary
	synth   port.Synthesizer
}

func NewServer(cfg *config.Config, library port.SpeechLibrary, synth port.Synthesizer) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 << 20,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,DELETE",
		AllowHeaders: "Content-Type",
	}))
	app.Use("/api", limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status":  "error",
				"message": "Rate limit exceeded. Please slow down.",
			})
		},
	}))

	s := &Server{
		app:     app,
		cfg:     cfg,
		library: library,
		synth:   synth,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/api/config", s.handleConfig)
	s.app.Get("/api/voices", s.handleVoices)
	s.app.Post("/api/speak", s.handleSpeak)
	s.app.Post("/api/save", s.handleSave)
	s.app.Get("/api/play/:filename", s.handlePlay)
	s.app.Get("/api/download/:filename", s.handleDownload)
	s.app.Get("/api/history", s.handleHistory)
	s.app.Delete("/api/delete/:filename", s.handleDelete)
	s.app.Post("/api/rename/:filename", s.handleRename)
	s.app.Get("/api/storage-info", s.handleStorageInfo)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

func (s *Server) sendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// libraryError maps service errors to client responses. Internal causes stay
// in the logs; clients get a generic category.
func (s *Server) libraryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrNotFound):
		return s.sendError(c, fiber.StatusNotFound, "File not found")
	case errors.Is(err, port.ErrNameTaken):
		return s.sendError(c, fiber.StatusBadRequest, "A file with that name already exists")
	case errors.Is(err, port.ErrInvalidName):
		return s.sendError(c, fiber.StatusBadRequest, "Invalid filename")
	default:
		return s.sendError(c, fiber.StatusInternalServerError, "Operation failed")
	}
}

func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":               "success",
		"base_url":             s.cfg.Server.BaseURL,
		"storage_type":         s.cfg.Storage.Kind,
		"file_max_age_seconds": s.cfg.Retention.MaxAgeSeconds,
	})
}

func (s *Server) handleStorageInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":               "success",
		"storage_type":         s.cfg.Storage.Kind,
		"file_max_age_seconds": s.cfg.Retention.MaxAgeSeconds,
		"file_max_age_minutes": s.cfg.Retention.MaxAgeSeconds / 60,
		"auto_delete_enabled":  true,
	})
}

func (s *Server) handleVoices(c *fiber.Ctx) error {
	voices, err := s.synth.Voices(c.Context())
	if err != nil {
		sdklogger.Warnw("Voice catalog fetch failed", "error", err.Error())
		return s.sendError(c, fiber.StatusInternalServerError, "Failed to fetch voices")
	}
	return c.JSON(fiber.Map{"status": "success", "voices": voices})
}

type synthesisRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
	Rate    *int   `json:"rate"`
	Volume  *int   `json:"volume"`
}

// parseSynthesisRequest validates and normalizes a speak/save body.
func (s *Server) parseSynthesisRequest(c *fiber.Ctx) (*synthesisRequest, error) {
	var req synthesisRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fmt.Errorf("invalid request body")
	}

	req.Text = sanitizeText(req.Text)
	if req.Text == "" {
		return nil, fmt.Errorf("text is required (max %d characters)", maxTextLength)
	}
	if !validVoiceID(req.VoiceID) {
		return nil, fmt.Errorf("valid voice_id is required")
	}

	rate := clamp(req.Rate, 50, 300, 150)
	volume := clamp(req.Volume, 0, 100, 100)
	req.Rate = &rate
	req.Volume = &volume
	return &req, nil
}

func (s *Server) handleSpeak(c *fiber.Ctx) error {
	req, err := s.parseSynthesisRequest(c)
	if err != nil {
		return s.sendError(c, fiber.StatusBadRequest, err.Error())
	}

	audio, err := s.synth.Synthesize(c.Context(), req.Text, req.VoiceID, *req.Rate, *req.Volume)
	if err != nil {
		sdklogger.Errorw("Synthesis failed", "voice", req.VoiceID, "error", err.Error())
		return s.sendError(c, fiber.StatusInternalServerError, "Speech generation failed")
	}

	name, err := s.library.SaveTemp(c.Context(), audio, ".mp3")
	if err != nil {
		return s.libraryError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"message":   "Audio generated",
		"temp_file": name,
		"audio_url": "/api/play/" + name,
	})
}

func (s *Server) handleSave(c *fiber.Ctx) error {
	req, err := s.parseSynthesisRequest(c)
	if err != nil {
		return s.sendError(c, fiber.StatusBadRequest, err.Error())
	}

	audio, err := s.synth.Synthesize(c.Context(), req.Text, req.VoiceID, *req.Rate, *req.Volume)
	if err != nil {
		sdklogger.Errorw("Synthesis failed", "voice", req.VoiceID, "error", err.Error())
		return s.sendError(c, fiber.StatusInternalServerError, "Speech generation failed")
	}

	name, err := s.library.SaveSpeech(c.Context(), audio, ".mp3")
	if err != nil {
		return s.libraryError(c, err)
	}

	maxAge := s.cfg.Retention.MaxAgeSeconds
	return c.JSON(fiber.Map{
		"status":             "success",
		"message":            fmt.Sprintf("Audio saved. File will be auto-deleted in %d minutes.", maxAge/60),
		"file":               name,
		"expires_in_seconds": maxAge,
	})
}

func (s *Server) handlePlay(c *fiber.Ctx) error {
	return s.serveAudio(c, false)
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	return s.serveAudio(c, true)
}

func (s *Server) serveAudio(c *fiber.Ctx, attachment bool) error {
	name, ok := domain.SanitizeFilename(c.Params("filename"))
	if !ok {
		return s.sendError(c, fiber.StatusBadRequest, "Invalid filename")
	}

	playback, err := s.library.ResolvePlayback(c.Context(), name)
	if err != nil {
		return s.libraryError(c, err)
	}

	// Object store: hand the presigned URL to the client.
	if playback.RedirectURL != "" {
		return c.JSON(fiber.Map{"status": "redirect", "url": playback.RedirectURL})
	}

	if attachment {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	}
	c.Set(fiber.HeaderContentType, domain.ContentTypeFor(name))

	if playback.LocalPath != "" {
		return c.SendFile(playback.LocalPath)
	}

	// Fallback: buffer through the library cache.
	audio, err := s.library.Fetch(c.Context(), name)
	if err != nil {
		return s.libraryError(c, err)
	}
	return c.Send(audio)
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"files":  s.library.History(c.Context()),
	})
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	name, ok := domain.SanitizeFilename(c.Params("filename"))
	if !ok {
		return s.sendError(c, fiber.StatusBadRequest, "Invalid filename")
	}

	if err := s.library.Delete(c.Context(), name); err != nil {
		return s.sendError(c, fiber.StatusNotFound, "File not found or delete failed")
	}
	return c.JSON(fiber.Map{"status": "success", "message": "File deleted"})
}

type renameRequest struct {
	NewName string `json:"new_name"`
}

func (s *Server) handleRename(c *fiber.Ctx) error {
	name, ok := domain.SanitizeFilename(c.Params("filename"))
	if !ok {
		return s.sendError(c, fiber.StatusBadRequest, "Invalid filename")
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.NewName = strings.TrimSpace(req.NewName)
	if req.NewName == "" {
		return s.sendError(c, fiber.StatusBadRequest, "New name is required")
	}
	if len(req.NewName) > domain.MaxFilenameLength {
		return s.sendError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Filename too long (max %d chars)", domain.MaxFilenameLength))
	}

	newName, err := s.library.Rename(c.Context(), name, req.NewName)
	if err != nil {
		return s.libraryError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":       "success",
		"message":      "File renamed",
		"new_filename": newName,
	})
}

func sanitizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxTextLength {
		return ""
	}
	return html.EscapeString(text)
}

func validVoiceID(id string) bool {
	return id != "" && len(id) <= 100 && voiceIDPattern.MatchString(id)
}

func clamp(v *int, min, max, def int) int {
	if v == nil {
		return def
	}
	if *v < min {
		return min
	}
	if *v > max {
		return max
	}
	return *v
}
