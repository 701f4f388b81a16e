//go:build darwin

package platform

// DefaultSoundFile is the system screenshot shutter sound.
const DefaultSoundFile = "/System/Library/Components/CoreAudio.component/Contents/SharedSupport/SystemSounds/system/Screen Capture.aif"

// PlayScreenshotSound plays soundFile (or the system shutter sound) with
// afplay. Best effort: it returns immediately and never fails.
func PlayScreenshotSound(soundFile string) {
	if soundFile == "" {
		soundFile = DefaultSoundFile
	}
	playDetached("afplay", soundFile)
}
