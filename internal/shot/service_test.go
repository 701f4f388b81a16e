package shot

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sim4gh/bettershot-go/internal/imaging"
	"github.com/sim4gh/bettershot-go/internal/platform"
)

type fakeScreens struct{}

func (fakeScreens) NumDisplays() int                 { return 2 }
func (fakeScreens) Bounds(i int) image.Rectangle     { return image.Rect(i*4, 0, i*4+4, 3) }
func (fakeScreens) Capture(b image.Rectangle) (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy())), nil
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes []imaging.Pixels
}

func (f *fakeClipboard) WriteImage(p imaging.Pixels) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, p)
	return nil
}

type fakeHistory struct {
	mu    sync.Mutex
	kinds []string
	paths []string
}

func (f *fakeHistory) Record(_ context.Context, kind, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	f.paths = append(f.paths, path)
	return nil
}

type idleChecker struct{}

func (idleChecker) Running(context.Context, string) bool { return false }

// pngRunner writes a small PNG to the output path, optionally waiting first.
type pngRunner struct {
	block   chan struct{}
	started chan struct{}
	once    sync.Once
}

func (r *pngRunner) Run(_ context.Context, _ string, args ...string) (int, string, error) {
	if r.started != nil {
		r.once.Do(func() { close(r.started) })
	}
	if r.block != nil {
		<-r.block
	}
	return 0, "", os.WriteFile(args[len(args)-1], encodePNG(2, 2), 0644)
}

func encodePNG(w, h int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))
	return buf.Bytes()
}

type harness struct {
	svc     *Service
	clip    *fakeClipboard
	history *fakeHistory
	sounds  *[]string
	tmp     string
}

func newHarness(t *testing.T, runner platform.Runner) harness {
	t.Helper()
	clip := &fakeClipboard{}
	hist := &fakeHistory{}
	var sounds []string
	tmp := t.TempDir()
	svc := New(Options{
		Runner:    runner,
		Checker:   idleChecker{},
		Screens:   fakeScreens{},
		Clipboard: clip,
		History:   hist,
		TempDir:   tmp,
		SoundFile: "shutter.aif",
		PlaySound: func(f string) { sounds = append(sounds, f) },
		Mouse:     func() (float64, float64) { return 12.5, 40 },
	})
	return harness{svc: svc, clip: clip, history: hist, sounds: &sounds, tmp: tmp}
}

func TestCaptureOnce(t *testing.T) {
	h := newHarness(t, nil)
	saveDir := filepath.Join(t.TempDir(), "Desktop")

	path, err := h.svc.CaptureOnce(context.Background(), saveDir, true)
	if err != nil {
		t.Fatalf("CaptureOnce: %v", err)
	}
	if filepath.Dir(path) != saveDir || !strings.HasPrefix(filepath.Base(path), "shot_") {
		t.Errorf("unexpected path %q", path)
	}
	if len(h.clip.writes) != 1 || h.clip.writes[0].Width != 4 {
		t.Errorf("clipboard writes = %+v", h.clip.writes)
	}
	if entries, _ := os.ReadDir(h.tmp); len(entries) != 0 {
		t.Errorf("scratch file left behind: %v", entries)
	}
	if len(h.history.kinds) != 1 || h.history.kinds[0] != "shot" {
		t.Errorf("history = %v", h.history.kinds)
	}
}

func TestCaptureAllMonitors(t *testing.T) {
	h := newHarness(t, nil)
	shots, err := h.svc.CaptureAllMonitors(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("CaptureAllMonitors: %v", err)
	}
	if len(shots) != 2 || shots[1].X != 4 {
		t.Errorf("shots = %+v", shots)
	}
	if len(h.history.paths) != 2 {
		t.Errorf("history = %v", h.history.paths)
	}
}

func TestSaveEditedImage(t *testing.T) {
	h := newHarness(t, nil)
	uri := imaging.PNGDataURIPrefix + base64.StdEncoding.EncodeToString(encodePNG(3, 1))

	path, err := h.svc.SaveEditedImage(context.Background(), uri, t.TempDir(), true)
	if err != nil {
		t.Fatalf("SaveEditedImage: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "bettershot_") {
		t.Errorf("unexpected path %q", path)
	}
	if len(h.clip.writes) != 1 || h.clip.writes[0].Width != 3 {
		t.Errorf("clipboard writes = %+v", h.clip.writes)
	}
}

func TestSaveEditedImageRejectsJPEG(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.SaveEditedImage(context.Background(), "data:image/jpeg;base64,AAAA", t.TempDir(), true)
	if !errors.Is(err, imaging.ErrInvalidDataURI) {
		t.Fatalf("err = %v", err)
	}
	if len(h.clip.writes) != 0 || len(h.history.kinds) != 0 {
		t.Error("nothing should be copied or recorded")
	}
}

func TestCaptureRegion(t *testing.T) {
	h := newHarness(t, nil)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	if err := os.WriteFile(src, encodePNG(10, 10), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := h.svc.CaptureRegion(context.Background(), src, imaging.CropRegion{X: 2, Y: 2, Width: 4, Height: 4}, dir)
	if err != nil {
		t.Fatalf("CaptureRegion: %v", err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	if _, err := h.svc.CaptureRegion(context.Background(), src, imaging.CropRegion{X: 2, Y: 2}, dir); !errors.Is(err, imaging.ErrInvalidRegion) {
		t.Errorf("err = %v, want ErrInvalidRegion", err)
	}
}

func TestNativeCaptureInProgress(t *testing.T) {
	runner := &pngRunner{block: make(chan struct{}), started: make(chan struct{})}
	h := newHarness(t, runner)
	dir := t.TempDir()

	first := make(chan error, 1)
	go func() {
		_, err := h.svc.NativeCapture(context.Background(), platform.ModeInteractive, dir)
		first <- err
	}()
	<-runner.started

	second := make(chan error, 1)
	go func() {
		_, err := h.svc.NativeCapture(context.Background(), platform.ModeWindow, dir)
		second <- err
	}()

	select {
	case err := <-second:
		if !errors.Is(err, platform.ErrCaptureInProgress) {
			t.Fatalf("second err = %v", err)
		}
		if !strings.Contains(err.Error(), "already in progress") {
			t.Errorf("message = %q", err.Error())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second capture blocked")
	}

	close(runner.block)
	if err := <-first; err != nil {
		t.Fatalf("first capture: %v", err)
	}
}

func TestSnap(t *testing.T) {
	h := newHarness(t, &pngRunner{})
	saveDir := t.TempDir()

	path, err := h.svc.Snap(context.Background(), platform.ModeFullscreen, SnapOptions{
		SaveDir:         saveDir,
		CopyToClipboard: true,
		PlaySound:       true,
	})
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if filepath.Dir(path) != saveDir {
		t.Errorf("saved to %q", path)
	}
	if len(*h.sounds) != 1 || (*h.sounds)[0] != "shutter.aif" {
		t.Errorf("sounds = %v", *h.sounds)
	}
	if len(h.clip.writes) != 1 {
		t.Errorf("clipboard writes = %d", len(h.clip.writes))
	}
	if entries, _ := os.ReadDir(h.tmp); len(entries) != 0 {
		t.Errorf("scratch file left behind: %v", entries)
	}
	if h.history.kinds[0] != "screen" {
		t.Errorf("history kind = %q", h.history.kinds[0])
	}
}

func TestMousePosition(t *testing.T) {
	h := newHarness(t, nil)
	x, y, err := h.svc.MousePosition()
	if err != nil || x != 12.5 || y != 40 {
		t.Errorf("MousePosition = %v, %v, %v", x, y, err)
	}

	if _, _, err := New(Options{}).MousePosition(); err == nil {
		t.Error("expected error without a pointer source")
	}
}
