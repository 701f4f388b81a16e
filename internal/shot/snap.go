package shot

import (
	"context"
	"os"

	"github.com/sim4gh/bettershot-go/internal/clipboard"
	"github.com/sim4gh/bettershot-go/internal/imaging"
	"github.com/sim4gh/bettershot-go/internal/logutil"
	"github.com/sim4gh/bettershot-go/internal/platform"
)

// SnapOptions controls a one-step capture from a shortcut or the tray.
type SnapOptions struct {
	SaveDir         string
	CopyToClipboard bool
	PlaySound       bool
}

// Snap runs a native capture into the scratch directory, plays the shutter
// sound, then moves the result into SaveDir. Without an editor in the loop
// this is the whole capture workflow.
func (s *Service) Snap(ctx context.Context, mode platform.Mode, opts SnapOptions) (string, error) {
	tmp, err := s.scratchDir()
	if err != nil {
		return "", err
	}

	raw, err := s.capturer.Capture(ctx, tmp, mode)
	if err != nil {
		return "", err
	}
	defer os.Remove(raw)

	if opts.PlaySound {
		s.PlaySound()
	}

	saved, err := imaging.CopyToDir(raw, opts.SaveDir, PrefixEdited)
	if err != nil {
		return "", err
	}

	if opts.CopyToClipboard {
		if err := clipboard.CopyImageFile(s.clip, saved); err != nil {
			return "", err
		}
	}

	s.record(ctx, mode.String(), saved)
	logutil.L().Info().Str("mode", mode.String()).Str("path", saved).Msg("snap saved")
	return saved, nil
}
