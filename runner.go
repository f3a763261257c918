package geoplot

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// App is a rendering application that runs one session.
type App interface {
	// Start runs the session and blocks until the window is closed, the
	// screenshot has been written, or rendering fails.
	Start() error
	// Close releases the application's resources. It must be idempotent.
	Close()
}

// AppFactory builds the App for a session from its configuration snapshot.
type AppFactory func(cfg Config, logger *slog.Logger) (App, error)

// Show opens the window and blocks until it is closed.
//
// Rendering failures, including panics, are logged and returned as a
// *RenderError; they never propagate as panics. Whatever the outcome, the
// App is closed and the session is reset to its defaults before Show
// returns.
func (s *Session) Show() error {
	if s.running {
		return ErrSessionRunning
	}
	return s.run(s.Config())
}

// SaveFig renders the session once, writes a PNG screenshot to path and
// terminates without user interaction. A ".png" extension is appended when
// path lacks one. Failures and reset behave as in Show.
func (s *Session) SaveFig(path string) error {
	if path == "" {
		return invalidArg("SaveFig", "path", path, "must be set")
	}
	if s.running {
		return ErrSessionRunning
	}
	s.cfg.SaveFig = pngPath(path)
	return s.run(s.Config())
}

// pngPath appends ".png" unless path already ends with it.
func pngPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return path
	}
	return path + ".png"
}

// run drives one session. Teardown and reset happen in the deferred block so
// they run on every exit path, panics included.
func (s *Session) run(cfg Config) (err error) {
	s.running = true
	id := uuid.NewString()
	log := s.logger.With("session", id)
	start := s.clock.Now()
	phase := "construct"

	var app App
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Session: id, Phase: phase, Err: fmt.Errorf("panic: %v", r)}
		}
		if app != nil {
			closeApp(app, log)
		}
		s.Reset()
		s.running = false

		elapsed := s.clock.Since(start)
		if err != nil {
			log.Error("session failed", "phase", phase, "elapsed", elapsed, "error", err)
			return
		}
		log.Info("session finished", "elapsed", elapsed)
	}()

	log.Info("session started",
		"layers", len(cfg.Layers),
		"tiles", cfg.Tiles.String(),
		"window", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH),
		"savefig", cfg.SaveFig,
	)

	app, err = s.newApp(cfg, log)
	if err != nil {
		return &RenderError{Session: id, Phase: phase, Err: err}
	}
	if app == nil {
		return &RenderError{Session: id, Phase: phase, Err: errors.New("app factory returned no app")}
	}

	phase = "run"
	if err := app.Start(); err != nil {
		return &RenderError{Session: id, Phase: phase, Err: err}
	}
	return nil
}

// closeApp calls Close, logging instead of propagating a panic.
func closeApp(app App, log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("app close panicked", "panic", r)
		}
	}()
	app.Close()
}
