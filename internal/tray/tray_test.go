package tray

import (
	"context"
	"errors"
	"testing"

	"github.com/sim4gh/bettershot-go/internal/platform"
	"github.com/sim4gh/bettershot-go/internal/shot"
)

type fakeSnapper struct {
	got  shot.SnapOptions
	mode platform.Mode
	path string
	err  error
}

func (f *fakeSnapper) Snap(_ context.Context, mode platform.Mode, opts shot.SnapOptions) (string, error) {
	f.mode = mode
	f.got = opts
	return f.path, f.err
}

func TestCaptureUsesSettings(t *testing.T) {
	snap := &fakeSnapper{path: "/tmp/out.png"}
	app := New(snap, Settings{SaveDir: "/saves", CopyToClipboard: true})

	var saved string
	app.OnSaved = func(p string) { saved = p }

	path, err := app.Capture(context.Background(), platform.ModeWindow)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if path != "/tmp/out.png" || saved != path {
		t.Errorf("path = %q, saved = %q", path, saved)
	}
	if snap.mode != platform.ModeWindow {
		t.Errorf("mode = %v", snap.mode)
	}
	want := shot.SnapOptions{SaveDir: "/saves", CopyToClipboard: true}
	if snap.got != want {
		t.Errorf("options = %+v, want %+v", snap.got, want)
	}
}

func TestCaptureErrorsSkipOnSaved(t *testing.T) {
	for _, want := range []error{platform.ErrCaptureInProgress, platform.ErrCancelled, errors.New("boom")} {
		app := New(&fakeSnapper{err: want}, Settings{})
		app.OnSaved = func(string) { t.Error("OnSaved called on failure") }

		if _, err := app.Capture(context.Background(), platform.ModeInteractive); !errors.Is(err, want) {
			t.Errorf("err = %v, want %v", err, want)
		}
	}
}

func TestToggles(t *testing.T) {
	app := New(&fakeSnapper{}, Settings{CopyToClipboard: true})

	var changes []Settings
	app.OnChange = func(s Settings) { changes = append(changes, s) }

	if app.ToggleClipboard() {
		t.Error("clipboard should be off")
	}
	if !app.ToggleSound() {
		t.Error("sound should be on")
	}

	if len(changes) != 2 {
		t.Fatalf("changes = %d, want 2", len(changes))
	}
	last := changes[1]
	if last.CopyToClipboard || !last.PlaySound {
		t.Errorf("last change = %+v", last)
	}
	if app.Settings() != last {
		t.Errorf("settings = %+v, want %+v", app.Settings(), last)
	}
}
