//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

// Available since macOS 10.15.
int hasScreenRecordingPermission() {
    return CGPreflightScreenCaptureAccess();
}
*/
import "C"

// HasScreenRecording reports whether this process may record the screen.
// It never prompts.
func HasScreenRecording() bool {
	return C.hasScreenRecordingPermission() != 0
}
