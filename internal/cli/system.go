package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var systemRaw bool

func addSystemCommands() {
	dirsCmd := &cobra.Command{
		Use:   "dirs",
		Short: "Show the Desktop and temp directories",
		Args:  cobra.NoArgs,
		RunE:  runDirs,
	}
	dirsCmd.Flags().BoolVar(&systemRaw, "raw", false, "Output as JSON (for piping)")

	soundCmd := &cobra.Command{
		Use:   "sound",
		Short: "Play the screenshot sound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service.PlaySound()
			return nil
		},
	}

	mouseCmd := &cobra.Command{
		Use:   "mouse",
		Short: "Print the mouse position",
		Args:  cobra.NoArgs,
		RunE:  runMouse,
	}
	mouseCmd.Flags().BoolVar(&systemRaw, "raw", false, "Output as JSON (for piping)")

	rootCmd.AddCommand(dirsCmd, soundCmd, mouseCmd)
}

func runDirs(cmd *cobra.Command, args []string) error {
	desktop, err := service.DesktopDirectory()
	if err != nil {
		return err
	}
	temp, err := service.TempDirectory()
	if err != nil {
		return err
	}

	if systemRaw {
		return printJSON(map[string]string{"desktop": desktop, "temp": temp})
	}

	fmt.Printf("Desktop: %s\n", desktop)
	fmt.Printf("Temp: %s\n", temp)
	return nil
}

func runMouse(cmd *cobra.Command, args []string) error {
	x, y, err := service.MousePosition()
	if err != nil {
		return err
	}

	if systemRaw {
		return printJSON([2]float64{x, y})
	}
	fmt.Printf("%g %g\n", x, y)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
