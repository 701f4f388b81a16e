package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sim4gh/bettershot-go/internal/config"
	"github.com/sim4gh/bettershot-go/internal/hotkey"
	"github.com/sim4gh/bettershot-go/internal/util"
)

var configForce bool

func addConfigCommand() {
	configCmd := &cobra.Command{
		Use:   "config [subcommand] [args...]",
		Short: "Manage configuration",
		Long: `Manage configuration

Subcommands:
  (none)              Show all config values
  get <key>           Get a specific value
  set <key> <value>   Set a value
  path                Show config file location
  reset               Restore defaults

Keys: ` + strings.Join(config.AllowedKeys, ", ") + `

Examples:
  bettershot config                                 Show all config
  bettershot config get save_dir                    Get the save directory
  bettershot config set save_dir ~/Pictures/Shots   Save somewhere else
  bettershot config set copy_to_clipboard false     Stop copying images
  bettershot config set shortcut_window Ctrl+Alt+W  Bind the window shortcut
  bettershot config set shortcut_screen ""          Unbind a shortcut
  bettershot config reset --force                   Reset without confirmation`,
		RunE: runConfig,
	}

	configCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Skip confirmation for reset")

	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showAllConfig()
	}

	subcommand := args[0]

	switch subcommand {
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("please specify a key to get. Usage: bettershot config get <key>")
		}
		return getConfigValue(args[1])

	case "set":
		if len(args) < 3 {
			return fmt.Errorf("please specify a key and value to set. Usage: bettershot config set <key> <value>")
		}
		return setConfigValue(args[1], args[2])

	case "path":
		return showConfigPath()

	case "reset":
		return resetConfig()

	default:
		return fmt.Errorf("unknown subcommand %q. Available subcommands: get, set, path, reset", subcommand)
	}
}

func showAllConfig() error {
	cfg := config.Get()

	fmt.Println("\nConfiguration:")
	fmt.Println(strings.Repeat("-", 50))

	for _, key := range config.AllowedKeys {
		value, _ := cfg.Value(key)
		showConfigLine(key, value, effectiveValue(cfg, key))
	}

	fmt.Println()
	return nil
}

// effectiveValue is what an unset directory key resolves to.
func effectiveValue(cfg *config.Config, key string) string {
	var dir string
	var err error
	switch key {
	case "save_dir":
		dir, err = cfg.ResolveSaveDir()
	case "temp_dir":
		dir, err = cfg.ResolveTempDir()
	default:
		return ""
	}
	if err != nil {
		return ""
	}
	return dir
}

func showConfigLine(key, value, fallback string) {
	displayValue := value
	if value == "" {
		displayValue = "(not set)"
		if fallback != "" {
			displayValue = fmt.Sprintf("(default: %s)", util.Truncate(fallback, 50))
		}
	}

	fmt.Printf("  %s: %s\n", key, displayValue)
}

func getConfigValue(key string) error {
	value, err := config.Get().Value(key)
	if err != nil {
		return err
	}

	if value == "" {
		fmt.Printf("Key %q is not set.\n", key)
	} else {
		fmt.Println(value)
	}
	return nil
}

func setConfigValue(key, value string) error {
	// Check if key is allowed
	if !config.IsAllowedKey(key) {
		return fmt.Errorf("%q is not a valid configuration key. Allowed keys: %s",
			key, strings.Join(config.AllowedKeys, ", "))
	}

	// Validate shortcuts before they reach the tray
	if strings.HasPrefix(key, "shortcut_") && value != "" {
		if _, err := hotkey.Parse(value); err != nil {
			return err
		}
	}

	if err := config.Set(key, value); err != nil {
		return err
	}

	fmt.Printf("Set %q to %q\n", key, value)
	return nil
}

func showConfigPath() error {
	fmt.Println(config.Path())
	return nil
}

func resetConfig() error {
	if !configForce {
		fmt.Print("Are you sure you want to reset all configuration to defaults? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.Clear(); err != nil {
		return err
	}

	fmt.Println("Configuration reset to defaults.")
	return nil
}
