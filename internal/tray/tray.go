// Package tray holds the menu-bar app state shared by the tray menu and
// global shortcuts.
package tray

import (
	"context"
	"errors"
	"sync"

	"github.com/sim4gh/bettershot-go/internal/logutil"
	"github.com/sim4gh/bettershot-go/internal/platform"
	"github.com/sim4gh/bettershot-go/internal/shot"
)

// Snapper performs a one-step capture. *shot.Service satisfies it.
type Snapper interface {
	Snap(ctx context.Context, mode platform.Mode, opts shot.SnapOptions) (string, error)
}

// Settings is the part of the configuration the tray reads and toggles.
type Settings struct {
	SaveDir         string
	CopyToClipboard bool
	PlaySound       bool
}

// App owns the tray state. Menu clicks and shortcuts both go through
// Capture.
type App struct {
	snapper Snapper

	mu       sync.RWMutex
	settings Settings

	// OpenFolder shows the save directory. OnChange persists toggles.
	OpenFolder func(dir string) error
	OnChange   func(Settings)
	OnSaved    func(path string)
}

// New builds an App around snapper.
func New(snapper Snapper, settings Settings) *App {
	return &App{snapper: snapper, settings: settings}
}

// Settings returns a copy of the current settings.
func (a *App) Settings() Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// Capture runs one capture in mode. Cancellation and an in-progress
// capture are expected and only logged.
func (a *App) Capture(ctx context.Context, mode platform.Mode) (string, error) {
	s := a.Settings()
	path, err := a.snapper.Snap(ctx, mode, shot.SnapOptions{
		SaveDir:         s.SaveDir,
		CopyToClipboard: s.CopyToClipboard,
		PlaySound:       s.PlaySound,
	})

	log := logutil.L().With().Str("mode", mode.String()).Logger()
	switch {
	case errors.Is(err, platform.ErrCaptureInProgress):
		log.Info().Msg("capture skipped: already in progress")
		return "", err
	case errors.Is(err, platform.ErrCancelled):
		log.Info().Msg("capture cancelled")
		return "", err
	case err != nil:
		log.Error().Err(err).Msg("capture failed")
		return "", err
	}

	if a.OnSaved != nil {
		a.OnSaved(path)
	}
	return path, nil
}

func (a *App) toggle(update func(*Settings) bool) bool {
	a.mu.Lock()
	on := update(&a.settings)
	s := a.settings
	a.mu.Unlock()

	if a.OnChange != nil {
		a.OnChange(s)
	}
	return on
}

// ToggleClipboard flips copy-to-clipboard and reports the new value.
func (a *App) ToggleClipboard() bool {
	return a.toggle(func(s *Settings) bool {
		s.CopyToClipboard = !s.CopyToClipboard
		return s.CopyToClipboard
	})
}

// ToggleSound flips the capture sound and reports the new value.
func (a *App) ToggleSound() bool {
	return a.toggle(func(s *Settings) bool {
		s.PlaySound = !s.PlaySound
		return s.PlaySound
	})
}
