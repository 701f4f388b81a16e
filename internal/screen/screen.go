// Package screen captures whole displays with github.com/kbinani/screenshot.
package screen

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/kbinani/screenshot"

	"github.com/sim4gh/bettershot-go/internal/util"
)

var ErrNoMonitors = errors.New("no monitors available")

// MonitorShot describes one captured display and where its image was saved.
type MonitorShot struct {
	ID          uint32  `json:"id"`
	X           int32   `json:"x"`
	Y           int32   `json:"y"`
	Width       uint32  `json:"width"`
	Height      uint32  `json:"height"`
	ScaleFactor float32 `json:"scale_factor"`
	Path        string  `json:"path"`
}

// Source enumerates and grabs displays.
type Source interface {
	NumDisplays() int
	Bounds(display int) image.Rectangle
	Capture(bounds image.Rectangle) (*image.RGBA, error)
}

// System is the Source backed by the OS display list.
type System struct{}

func (System) NumDisplays() int                   { return screenshot.NumActiveDisplays() }
func (System) Bounds(display int) image.Rectangle { return screenshot.GetDisplayBounds(display) }
func (System) Capture(bounds image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(bounds)
}

// CaptureAll saves one PNG per display into saveDir.
func CaptureAll(src Source, saveDir string) ([]MonitorShot, error) {
	n := src.NumDisplays()
	if n == 0 {
		return nil, ErrNoMonitors
	}

	if err := util.EnsureDir(saveDir); err != nil {
		return nil, err
	}

	shots := make([]MonitorShot, 0, n)
	for i := 0; i < n; i++ {
		shot, err := captureDisplay(src, i, saveDir)
		if err != nil {
			return nil, err
		}
		shots = append(shots, shot)
	}
	return shots, nil
}

// CapturePrimary saves the first display into dir and returns its path.
func CapturePrimary(src Source, dir string) (string, error) {
	if src.NumDisplays() == 0 {
		return "", ErrNoMonitors
	}
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	shot, err := captureDisplay(src, 0, dir)
	if err != nil {
		return "", err
	}
	return shot.Path, nil
}

func captureDisplay(src Source, display int, dir string) (MonitorShot, error) {
	id := uint32(display)
	bounds := src.Bounds(display)

	img, err := src.Capture(bounds)
	if err != nil {
		return MonitorShot{}, fmt.Errorf("failed to capture monitor %d: %w", id, err)
	}

	path := filepath.Join(dir, util.GenerateFilenameWithID("monitor", id, "png"))
	if err := writePNG(path, img); err != nil {
		return MonitorShot{}, err
	}

	return MonitorShot{
		ID:          id,
		X:           int32(bounds.Min.X),
		Y:           int32(bounds.Min.Y),
		Width:       uint32(bounds.Dx()),
		Height:      uint32(bounds.Dy()),
		ScaleFactor: scaleFactor(bounds, img),
		Path:        path,
	}, nil
}

// scaleFactor is the ratio of captured pixels to logical display width.
func scaleFactor(bounds image.Rectangle, img image.Image) float32 {
	if bounds.Dx() <= 0 || img == nil || img.Bounds().Dx() <= 0 {
		return 1
	}
	return float32(img.Bounds().Dx()) / float32(bounds.Dx())
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to save screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}
	return nil
}
