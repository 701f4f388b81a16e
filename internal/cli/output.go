package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/clipboard"
	"github.com/sim4gh/bettershot-go/internal/logutil"
)

var (
	outputOpen     bool
	outputCopyPath bool
)

// addOutputFlags adds --open and --copy-path to commands that save a file.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&outputOpen, "open", false, "Open the saved image")
	cmd.Flags().BoolVar(&outputCopyPath, "copy-path", false, "Copy the saved path to the clipboard")
}

// reportSaved prints path and runs the --open / --copy-path follow-ups.
// Follow-up failures are warnings; the file is already saved.
func reportSaved(path string) {
	color.Green("Saved: %s", path)

	if outputCopyPath {
		if err := clipboard.WriteText(path); err != nil {
			fmt.Println("Warning: failed to copy path to clipboard:", err)
		} else {
			fmt.Println("Path copied to clipboard")
		}
	}

	if outputOpen {
		if err := browser.OpenFile(path); err != nil {
			logutil.L().Warn().Err(err).Str("path", path).Msg("open failed")
			fmt.Println("Warning: failed to open image:", err)
		}
	}
}
