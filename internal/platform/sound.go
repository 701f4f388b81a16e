package platform

import (
	"os/exec"

	"github.com/sim4gh/bettershot-go/internal/logutil"
)

// playDetached starts a command and reaps it in the background. It never
// reports an error to the caller; failures only reach the debug log.
func playDetached(name string, args ...string) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		logutil.L().Debug().Err(err).Str("player", name).Msg("sound playback not started")
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logutil.L().Debug().Err(err).Str("player", name).Msg("sound playback failed")
		}
	}()
}
