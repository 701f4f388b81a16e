// Package shot is the command surface: every externally callable
// screenshot operation, wired to the capture guard, image I/O, clipboard
// and history.
package shot

import (
	"context"
	"fmt"
	"os"

	"github.com/sim4gh/bettershot-go/internal/clipboard"
	"github.com/sim4gh/bettershot-go/internal/config"
	"github.com/sim4gh/bettershot-go/internal/imaging"
	"github.com/sim4gh/bettershot-go/internal/logutil"
	"github.com/sim4gh/bettershot-go/internal/platform"
	"github.com/sim4gh/bettershot-go/internal/screen"
)

// Filename prefixes per operation.
const (
	PrefixShot   = "shot"
	PrefixEdited = "bettershot"
)

// Recorder stores saved files. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, kind, path string) error
}

// Options wires a Service. Zero fields fall back to the system
// implementations.
type Options struct {
	Runner    platform.Runner
	Checker   platform.ProcessChecker
	Screens   screen.Source
	Clipboard clipboard.Writer
	History   Recorder
	TempDir   string
	SoundFile string

	PlaySound func(soundFile string)
	Mouse     func() (float64, float64)
}

// Service runs screenshot operations. It owns the capture guard, so one
// Service must be shared by everything that can trigger a native capture.
type Service struct {
	guard     *platform.Guard
	capturer  *platform.Capturer
	screens   screen.Source
	clip      clipboard.Writer
	history   Recorder
	tempDir   string
	soundFile string
	playSound func(string)
	mouse     func() (float64, float64)
}

// New builds a Service from opts.
func New(opts Options) *Service {
	checker := opts.Checker
	if checker == nil {
		checker = platform.Pgrep{}
	}
	guard := platform.NewGuard(checker)

	s := &Service{
		guard:     guard,
		capturer:  platform.NewCapturer(guard, opts.Runner),
		screens:   opts.Screens,
		clip:      opts.Clipboard,
		history:   opts.History,
		tempDir:   opts.TempDir,
		soundFile: opts.SoundFile,
		playSound: opts.PlaySound,
		mouse:     opts.Mouse,
	}
	if s.screens == nil {
		s.screens = screen.System{}
	}
	if s.clip == nil {
		s.clip = clipboard.NewSystem()
	}
	if s.playSound == nil {
		s.playSound = platform.PlayScreenshotSound
	}
	return s
}

// CaptureOnce grabs the primary monitor, copies it into saveDir and
// optionally puts it on the clipboard.
func (s *Service) CaptureOnce(ctx context.Context, saveDir string, copyToClipboard bool) (string, error) {
	tmp, err := s.scratchDir()
	if err != nil {
		return "", err
	}

	raw, err := screen.CapturePrimary(s.screens, tmp)
	if err != nil {
		return "", err
	}
	defer os.Remove(raw)

	saved, err := imaging.CopyToDir(raw, saveDir, PrefixShot)
	if err != nil {
		return "", err
	}

	if copyToClipboard {
		if err := clipboard.CopyImageFile(s.clip, saved); err != nil {
			return "", err
		}
	}

	s.record(ctx, "shot", saved)
	return saved, nil
}

// CaptureAllMonitors saves one image per display into saveDir.
func (s *Service) CaptureAllMonitors(ctx context.Context, saveDir string) ([]screen.MonitorShot, error) {
	shots, err := screen.CaptureAll(s.screens, saveDir)
	if err != nil {
		return nil, err
	}
	for _, shot := range shots {
		s.record(ctx, "monitor", shot.Path)
	}
	return shots, nil
}

// CaptureRegion crops sourcePath to region and saves the result in saveDir.
func (s *Service) CaptureRegion(ctx context.Context, sourcePath string, region imaging.CropRegion, saveDir string) (string, error) {
	path, err := imaging.CropImage(sourcePath, region, saveDir)
	if err != nil {
		return "", err
	}
	s.record(ctx, "region", path)
	return path, nil
}

// SaveEditedImage stores a PNG data URI in saveDir and optionally copies
// it to the clipboard.
func (s *Service) SaveEditedImage(ctx context.Context, dataURI, saveDir string, copyToClipboard bool) (string, error) {
	path, err := imaging.SaveBase64Image(dataURI, saveDir, PrefixEdited)
	if err != nil {
		return "", err
	}

	if copyToClipboard {
		if err := clipboard.CopyImageFile(s.clip, path); err != nil {
			return "", err
		}
	}

	s.record(ctx, "edited", path)
	return path, nil
}

// NativeCapture runs the OS capture tool in mode, writing into saveDir.
// A capture already running fails with platform.ErrCaptureInProgress.
func (s *Service) NativeCapture(ctx context.Context, mode platform.Mode, saveDir string) (string, error) {
	path, err := s.capturer.Capture(ctx, saveDir, mode)
	if err != nil {
		return "", err
	}
	s.record(ctx, mode.String(), path)
	return path, nil
}

// DesktopDirectory returns the user's Desktop path.
func (s *Service) DesktopDirectory() (string, error) {
	return config.DesktopDir()
}

// TempDirectory returns the canonical system temp path.
func (s *Service) TempDirectory() (string, error) {
	return config.TempDir()
}

// PlaySound starts the shutter sound and returns immediately. It never
// fails; playback problems only reach the debug log.
func (s *Service) PlaySound() {
	s.playSound(s.soundFile)
}

// MousePosition returns the pointer location in screen coordinates.
func (s *Service) MousePosition() (float64, float64, error) {
	if s.mouse == nil {
		return 0, 0, fmt.Errorf("mouse position is not available")
	}
	x, y := s.mouse()
	return x, y, nil
}

func (s *Service) scratchDir() (string, error) {
	if s.tempDir != "" {
		return s.tempDir, nil
	}
	return (&config.Config{}).ResolveTempDir()
}

// record never fails the operation that produced the file.
func (s *Service) record(ctx context.Context, kind, path string) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, kind, path); err != nil {
		logutil.L().Warn().Err(err).Str("path", path).Msg("history not recorded")
	}
}
