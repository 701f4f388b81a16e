package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sim4gh/bettershot-go/internal/logutil"
	"github.com/sim4gh/bettershot-go/internal/util"
)

// Mode selects what the capture tool grabs
type Mode int

const (
	ModeInteractive Mode = iota
	ModeFullscreen
	ModeWindow
)

func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "region"
	case ModeFullscreen:
		return "screen"
	case ModeWindow:
		return "window"
	default:
		return "unknown"
	}
}

// Args returns the screencapture flags for m. -x silences the tool's own
// shutter sound.
func (m Mode) Args() []string {
	switch m {
	case ModeInteractive:
		return []string{"-i", "-x"}
	case ModeWindow:
		return []string{"-w", "-x"}
	default:
		return []string{"-x"}
	}
}

// ParseMode accepts region|interactive, screen|fullscreen and window.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "region", "interactive":
		return ModeInteractive, nil
	case "screen", "fullscreen":
		return ModeFullscreen, nil
	case "window":
		return ModeWindow, nil
	default:
		return 0, fmt.Errorf("unknown capture mode %q. Use: region, screen, or window", s)
	}
}

// Runner runs an external command to completion. err is reserved for
// spawn failures; a process that ran and exited non-zero reports it
// through exitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (exitCode int, stderr string, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (int, string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), stderr.String(), nil
	}
	if err != nil {
		return -1, stderr.String(), err
	}
	return 0, stderr.String(), nil
}

// Capturer produces screenshot files with the native capture tool.
type Capturer struct {
	guard  *Guard
	runner Runner
}

// NewCapturer builds a capturer around guard. A nil runner uses ExecRunner.
func NewCapturer(guard *Guard, runner Runner) *Capturer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Capturer{guard: guard, runner: runner}
}

// Capture writes exactly one PNG into dir on success and none on failure.
func (c *Capturer) Capture(ctx context.Context, dir string, mode Mode) (string, error) {
	release, err := c.guard.Acquire(ctx)
	if err != nil {
		logutil.L().Warn().Str("mode", mode.String()).Msg("capture rejected: already in progress")
		return "", err
	}
	defer release()

	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, util.GenerateFilename("screenshot", "png"))
	args := append(mode.Args(), path)

	start := time.Now()
	code, stderr, err := c.runner.Run(ctx, CaptureTool, args...)
	log := logutil.L().With().
		Str("mode", mode.String()).
		Int("exit_code", code).
		Dur("elapsed", time.Since(start)).
		Logger()

	if err != nil {
		removePartial(path)
		log.Error().Err(err).Msg("capture tool failed to start")
		return "", fmt.Errorf("failed to run %s: %w", CaptureTool, err)
	}

	if isPermissionError(stderr) {
		removePartial(path)
		log.Warn().Str("stderr", strings.TrimSpace(stderr)).Msg("capture denied")
		return "", ErrPermissionDenied
	}

	// The tool exits 0 without a file when the user presses Escape, so a
	// missing file is treated as cancellation whatever the exit code.
	if code != 0 || !util.FileExists(path) {
		removePartial(path)
		log.Info().Msg("capture cancelled")
		return "", ErrCancelled
	}

	log.Info().Str("path", path).Msg("capture finished")
	return path, nil
}

// isPermissionError matches the tool's stderr. The wording is locale and
// OS-version dependent.
func isPermissionError(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "permission") ||
		strings.Contains(s, "denied") ||
		strings.Contains(s, "not authorized")
}

func removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logutil.L().Debug().Err(err).Str("path", path).Msg("failed to remove partial capture")
	}
}
