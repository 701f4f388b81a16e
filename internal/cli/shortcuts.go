package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/config"
	"github.com/sim4gh/bettershot-go/internal/platform"
	"github.com/sim4gh/bettershot-go/internal/shot"
)

func addShortcutCommands() {
	shortcuts := []struct {
		use   string
		short string
		mode  platform.Mode
	}{
		{"sc", "Quick region screenshot to the save directory", platform.ModeInteractive},
		{"ss", "Quick full-screen screenshot to the save directory", platform.ModeFullscreen},
		{"sw", "Quick window screenshot to the save directory", platform.ModeWindow},
	}

	for _, sc := range shortcuts {
		mode := sc.mode
		c := &cobra.Command{
			Use:   sc.use,
			Short: sc.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return handleScreenshotShortcut(cmd, mode)
			},
		}
		addOutputFlags(c)
		rootCmd.AddCommand(c)
	}
}

// handleScreenshotShortcut runs the whole capture workflow: native capture,
// shutter sound, copy into the save directory and the clipboard.
func handleScreenshotShortcut(cmd *cobra.Command, mode platform.Mode) error {
	if !platform.IsScreenshotSupported() {
		return platform.ErrNotSupported
	}

	cfg := config.Get()
	dir, err := cfg.ResolveSaveDir()
	if err != nil {
		return err
	}

	if mode == platform.ModeInteractive {
		fmt.Println("Select area for screenshot...")
	}
	path, err := service.Snap(cmd.Context(), mode, shot.SnapOptions{
		SaveDir:         dir,
		CopyToClipboard: cfg.CopyToClipboard,
		PlaySound:       cfg.PlaySound,
	})
	if errors.Is(err, platform.ErrCancelled) {
		color.Yellow("Screenshot cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	reportSaved(path)
	if cfg.CopyToClipboard {
		fmt.Println("Image copied to clipboard")
	}
	return nil
}
