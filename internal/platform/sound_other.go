//go:build !darwin

package platform

// DefaultSoundFile is empty where no system shutter sound is known.
const DefaultSoundFile = ""

// PlayScreenshotSound plays soundFile with paplay when one is configured.
// Best effort: it returns immediately and never fails.
func PlayScreenshotSound(soundFile string) {
	if soundFile == "" {
		return
	}
	playDetached("paplay", soundFile)
}
