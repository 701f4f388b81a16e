//go:build !darwin

package platform

// HasScreenRecording always reports true where no permission gate exists.
func HasScreenRecording() bool {
	return true
}
