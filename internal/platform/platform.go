// Package platform wraps the OS tools behind a native capture and the
// shutter sound.
package platform

import (
	"errors"
	"runtime"
)

// CaptureTool is the external binary driving native captures.
const CaptureTool = "screencapture"

var (
	ErrCaptureInProgress = errors.New("another screenshot capture is already in progress")
	ErrCancelled         = errors.New("screenshot was cancelled or failed")
	ErrPermissionDenied  = errors.New("screen recording permission denied. Enable it in System Settings > Privacy & Security > Screen Recording, then restart the app")
	ErrNotSupported      = errors.New("native screenshot capture is only supported on macOS")
)

// IsScreenshotSupported returns true if native capture is supported on this platform
func IsScreenshotSupported() bool {
	return runtime.GOOS == "darwin"
}
