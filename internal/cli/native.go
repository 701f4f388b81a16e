package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/config"
	"github.com/sim4gh/bettershot-go/internal/platform"
)

var nativeDir string

func addNativeCommand() {
	nativeCmd := &cobra.Command{
		Use:   "native [region|screen|window]",
		Short: "Run the macOS capture tool (macOS)",
		Long: `Run the macOS capture tool (macOS)

Writes the raw capture into the temp directory (or --dir) and prints its
path. Only one capture can run at a time; a second one fails immediately.

Examples:
  bettershot native             Select a region
  bettershot native window      Click a window
  bettershot native screen      Whole screen, no interaction`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"region", "screen", "window"},
		RunE:      runNative,
	}

	nativeCmd.Flags().StringVarP(&nativeDir, "dir", "d", "", "Directory to write into (default: temp directory)")
	addOutputFlags(nativeCmd)

	rootCmd.AddCommand(nativeCmd)
}

func runNative(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	mode, err := platform.ParseMode(arg)
	if err != nil {
		return err
	}

	if !platform.IsScreenshotSupported() {
		return platform.ErrNotSupported
	}

	dir := nativeDir
	if dir == "" {
		if dir, err = config.Get().ResolveTempDir(); err != nil {
			return err
		}
	}

	if mode == platform.ModeInteractive {
		fmt.Println("Select area for screenshot...")
	}
	path, err := service.NativeCapture(cmd.Context(), mode, dir)
	if errors.Is(err, platform.ErrCancelled) {
		color.Yellow("Screenshot cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	reportSaved(path)
	return nil
}
