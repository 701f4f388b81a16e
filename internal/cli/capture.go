package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/imaging"
	"github.com/sim4gh/bettershot-go/internal/screen"
	"github.com/sim4gh/bettershot-go/internal/util"
)

var (
	captureDir  string
	captureCopy bool
	monitorsRaw bool
	cropRegion  imaging.CropRegion
)

func addCaptureCommand() {
	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture the primary monitor",
		Long: `Capture the primary monitor

The image is saved to the save directory (Desktop by default) and copied
to the clipboard when copy_to_clipboard is on.

Examples:
  bettershot capture                  Capture to the save directory
  bettershot capture --dir ~/shots    Capture into ~/shots
  bettershot capture --copy=false     Do not touch the clipboard`,
		Args: cobra.NoArgs,
		RunE: runCapture,
	}

	captureCmd.Flags().StringVarP(&captureDir, "dir", "d", "", "Directory to save into")
	captureCmd.Flags().BoolVarP(&captureCopy, "copy", "c", false, "Copy the image to the clipboard (default from config)")
	addOutputFlags(captureCmd)

	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	dir, err := saveDir(captureDir)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Capturing screen..."
	s.Start()
	path, err := service.CaptureOnce(cmd.Context(), dir, copyImage(cmd, captureCopy))
	s.Stop()
	if err != nil {
		return err
	}

	reportSaved(path)
	return nil
}

func addMonitorsCommand() {
	monitorsCmd := &cobra.Command{
		Use:   "monitors",
		Short: "Capture every monitor",
		Long: `Capture every monitor

Saves one image per display and prints where each display sits in the
virtual desktop.

Examples:
  bettershot monitors                Capture all displays
  bettershot monitors --raw | jq .   JSON output for scripting`,
		Aliases: []string{"all"},
		Args:    cobra.NoArgs,
		RunE:    runMonitors,
	}

	monitorsCmd.Flags().StringVarP(&captureDir, "dir", "d", "", "Directory to save into")
	monitorsCmd.Flags().BoolVar(&monitorsRaw, "raw", false, "Output as JSON (for piping)")

	rootCmd.AddCommand(monitorsCmd)
}

func runMonitors(cmd *cobra.Command, args []string) error {
	dir, err := saveDir(captureDir)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !monitorsRaw {
		s.Suffix = " Capturing monitors..."
		s.Start()
	}
	shots, err := service.CaptureAllMonitors(cmd.Context(), dir)
	s.Stop()
	if err != nil {
		return err
	}

	if monitorsRaw {
		return printJSON(shots)
	}

	fmt.Println()
	displayMonitorsTable(shots)
	fmt.Printf("\n%d monitor(s) captured to %s\n", len(shots), dir)
	return nil
}

func displayMonitorsTable(shots []screen.MonitorShot) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Position", "Size", "Scale", "File"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, m := range shots {
		table.Append([]string{
			strconv.FormatUint(uint64(m.ID), 10),
			fmt.Sprintf("%d,%d", m.X, m.Y),
			fmt.Sprintf("%dx%d", m.Width, m.Height),
			util.FormatScale(m.ScaleFactor),
			util.Truncate(m.Path, 60),
		})
	}

	table.Render()
}

func addCropCommand() {
	cropCmd := &cobra.Command{
		Use:   "crop <image>",
		Short: "Crop an image to a region",
		Long: `Crop an image to a region

The region is clamped to the image, so a rectangle that runs past the
edge is cut back instead of rejected.

Examples:
  bettershot crop shot.png --x 10 --y 10 --width 400 --height 300`,
		Args: cobra.ExactArgs(1),
		RunE: runCrop,
	}

	cropCmd.Flags().Uint32Var(&cropRegion.X, "x", 0, "Left edge in pixels")
	cropCmd.Flags().Uint32Var(&cropRegion.Y, "y", 0, "Top edge in pixels")
	cropCmd.Flags().Uint32Var(&cropRegion.Width, "width", 0, "Width in pixels")
	cropCmd.Flags().Uint32Var(&cropRegion.Height, "height", 0, "Height in pixels")
	cropCmd.Flags().StringVarP(&captureDir, "dir", "d", "", "Directory to save into")
	cropCmd.MarkFlagRequired("width")
	cropCmd.MarkFlagRequired("height")
	addOutputFlags(cropCmd)

	rootCmd.AddCommand(cropCmd)
}

func runCrop(cmd *cobra.Command, args []string) error {
	dir, err := saveDir(captureDir)
	if err != nil {
		return err
	}

	path, err := service.CaptureRegion(cmd.Context(), args[0], cropRegion, dir)
	if err != nil {
		return err
	}

	reportSaved(path)
	return nil
}

func addSaveCommand() {
	saveCmd := &cobra.Command{
		Use:   "save <data-uri|->",
		Short: "Save a PNG data URI as an image",
		Long: `Save a PNG data URI as an image

Only "data:image/png;base64," URIs are accepted. Pass "-" to read the URI
from stdin.

Examples:
  bettershot save "data:image/png;base64,iVBORw0..."
  editor --export | bettershot save -`,
		Args: cobra.ExactArgs(1),
		RunE: runSave,
	}

	saveCmd.Flags().StringVarP(&captureDir, "dir", "d", "", "Directory to save into")
	saveCmd.Flags().BoolVarP(&captureCopy, "copy", "c", false, "Copy the image to the clipboard (default from config)")
	addOutputFlags(saveCmd)

	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	data := args[0]
	if data == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		data = string(b)
	}
	data = strings.TrimSpace(data)

	dir, err := saveDir(captureDir)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Saving image..."
	s.Start()
	path, err := service.SaveEditedImage(cmd.Context(), data, dir, copyImage(cmd, captureCopy))
	s.Stop()
	if err != nil {
		return err
	}

	reportSaved(path)
	return nil
}
