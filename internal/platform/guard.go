package platform

import (
	"context"
	"os/exec"
	"sync"
)

// ProcessChecker reports whether a process with the exact name is alive.
type ProcessChecker interface {
	Running(ctx context.Context, name string) bool
}

// Pgrep looks names up with `pgrep -x`.
type Pgrep struct{}

// Running returns true when pgrep exits 0. A pgrep that cannot be spawned
// counts as "not running".
func (Pgrep) Running(ctx context.Context, name string) bool {
	return exec.CommandContext(ctx, "pgrep", "-x", name).Run() == nil
}

// Guard admits one native capture at a time. A second request fails fast
// instead of queueing.
type Guard struct {
	mu      sync.Mutex
	checker ProcessChecker
}

// NewGuard returns a guard that also consults checker for a capture tool
// started outside this process. checker may be nil.
func NewGuard(checker ProcessChecker) *Guard {
	return &Guard{checker: checker}
}

// Acquire takes the guard. The returned release func is safe to call more
// than once.
func (g *Guard) Acquire(ctx context.Context) (release func(), err error) {
	if !g.mu.TryLock() {
		return nil, ErrCaptureInProgress
	}

	if g.checker != nil && g.checker.Running(ctx, CaptureTool) {
		g.mu.Unlock()
		return nil, ErrCaptureInProgress
	}

	var once sync.Once
	return func() { once.Do(g.mu.Unlock) }, nil
}
