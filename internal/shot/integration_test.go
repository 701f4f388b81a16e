//go:build integration && darwin

package shot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sim4gh/bettershot-go/internal/imaging"
	"github.com/sim4gh/bettershot-go/internal/platform"
)

func TestMain(m *testing.M) {
	if !platform.HasScreenRecording() {
		fmt.Println("SKIP: screen recording permission not granted to this terminal")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// newSystemService builds a Service on the real capture tool and screens
// with clipboard writes recorded instead of sent.
func newSystemService(t *testing.T) (*Service, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	return New(Options{
		Clipboard: clip,
		TempDir:   t.TempDir(),
		PlaySound: func(string) {},
	}), clip
}

// assertPNG opens path and checks it decodes to a non-empty image.
func assertPNG(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	if img.Bounds().Empty() {
		t.Fatalf("%s is empty", path)
	}
	return img
}

func TestSystemNativeFullscreen(t *testing.T) {
	svc, _ := newSystemService(t)
	dir := t.TempDir()

	path, err := svc.NativeCapture(context.Background(), platform.ModeFullscreen, dir)
	if err != nil {
		t.Fatalf("NativeCapture: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "screenshot_") {
		t.Errorf("unexpected name %q", path)
	}
	assertPNG(t, path)

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected exactly one file in %s, got %d", dir, len(entries))
	}
}

func TestSystemCaptureOnce(t *testing.T) {
	svc, clip := newSystemService(t)

	path, err := svc.CaptureOnce(context.Background(), t.TempDir(), true)
	if err != nil {
		t.Fatalf("CaptureOnce: %v", err)
	}
	img := assertPNG(t, path)
	if len(clip.writes) != 1 || clip.writes[0].Width != img.Bounds().Dx() {
		t.Errorf("clipboard got %d writes", len(clip.writes))
	}
}

func TestSystemCaptureAllMonitors(t *testing.T) {
	svc, _ := newSystemService(t)

	shots, err := svc.CaptureAllMonitors(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("CaptureAllMonitors: %v", err)
	}
	for _, m := range shots {
		assertPNG(t, m.Path)
		if m.ScaleFactor < 1 {
			t.Errorf("monitor %d scale %v", m.ID, m.ScaleFactor)
		}
	}
}

func TestSystemConcurrentSnaps(t *testing.T) {
	svc, _ := newSystemService(t)
	saveDir := t.TempDir()

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Snap(context.Background(), platform.ModeFullscreen, SnapOptions{SaveDir: saveDir})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, platform.ErrCaptureInProgress):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded == 0 {
		t.Fatal("no capture succeeded")
	}

	entries, _ := os.ReadDir(saveDir)
	if len(entries) != succeeded {
		t.Errorf("%d files saved, %d captures succeeded", len(entries), succeeded)
	}
}
