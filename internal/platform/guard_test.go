package platform

import (
	"context"
	"errors"
	"testing"
)

type fakeChecker struct {
	running bool
	asked   []string
}

func (f *fakeChecker) Running(_ context.Context, name string) bool {
	f.asked = append(f.asked, name)
	return f.running
}

func TestGuardFailsFastWhileHeld(t *testing.T) {
	g := NewGuard(nil)
	release, err := g.Acquire(context.Background())
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	if _, err := g.Acquire(context.Background()); !errors.Is(err, ErrCaptureInProgress) {
		t.Fatalf("second Acquire err = %v, want ErrCaptureInProgress", err)
	}

	release()
	release() // idempotent

	release, err = g.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	release()
}

func TestGuardRejectsExternalCapture(t *testing.T) {
	checker := &fakeChecker{running: true}
	g := NewGuard(checker)

	if _, err := g.Acquire(context.Background()); !errors.Is(err, ErrCaptureInProgress) {
		t.Fatalf("Acquire err = %v, want ErrCaptureInProgress", err)
	}
	if len(checker.asked) != 1 || checker.asked[0] != CaptureTool {
		t.Errorf("checker asked %v", checker.asked)
	}

	// The lock must not stay held after the rejection.
	checker.running = false
	release, err := g.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	release()
}
