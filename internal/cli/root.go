package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/config"
	"github.com/sim4gh/bettershot-go/internal/history"
	"github.com/sim4gh/bettershot-go/internal/logutil"
	"github.com/sim4gh/bettershot-go/internal/pointer"
	"github.com/sim4gh/bettershot-go/internal/shot"
)

// Version is set at build time
var Version = "0.1.0"

var (
	verbose bool

	service      *shot.Service
	historyStore *history.Store
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bettershot",
	Short: "Bettershot - screenshots from the command line",
	Long: `Bettershot - screenshots from the command line

Capture regions, windows, whole screens or every monitor, crop and save
edited images, and keep a history of what was saved. Run "bettershot tray"
for a menu-bar icon with global shortcuts.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if historyStore != nil {
		historyStore.Close()
	}
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr at debug level")

	// Add all subcommands
	addCaptureCommand()
	addMonitorsCommand()
	addCropCommand()
	addSaveCommand()
	addNativeCommand()
	addShortcutCommands()
	addSystemCommands()
	addConfigCommand()
	addDoctorCommand()
	addHistoryCommand()
	addTrayCommand()
}

// setup starts logging and builds the shared Service. It runs before
// every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	if verbose {
		logutil.SetOutput(os.Stderr)
	} else if dir, err := config.Dir(); err == nil {
		if err := logutil.Setup(dir, cfg.LogLevel); err != nil {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		}
	}

	opts := shot.Options{
		SoundFile: cfg.SoundFile,
		Mouse:     pointer.Position,
	}
	if tmp, err := cfg.ResolveTempDir(); err == nil {
		opts.TempDir = tmp
	}
	if cfg.History {
		if store, err := openHistory(); err != nil {
			logutil.L().Warn().Err(err).Msg("history disabled")
		} else {
			historyStore = store
			opts.History = store
		}
	}

	service = shot.New(opts)
	logutil.L().Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

func openHistory() (*history.Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dir, history.DBFileName))
}

// saveDir returns dir when set, otherwise the configured save directory.
func saveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return config.Get().ResolveSaveDir()
}

// copyImage resolves a --copy flag against copy_to_clipboard.
func copyImage(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("copy") {
		return flag
	}
	return config.Get().CopyToClipboard
}
