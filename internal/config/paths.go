package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appName = "bettershot"

// getConfigDir returns the platform-specific configuration directory
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		// macOS: ~/Library/Application Support/bettershot
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", appName)

	case "windows":
		// Windows: %APPDATA%/bettershot
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, appName)

	default:
		// Linux and others: ~/.config/bettershot
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(configHome, appName)
	}

	return configDir, nil
}

// Dir returns the directory holding the config file, log and history.
func Dir() (string, error) {
	return getConfigDir()
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DesktopDir returns the user's Desktop directory. XDG_DESKTOP_DIR wins
// on Linux.
func DesktopDir() (string, error) {
	if runtime.GOOS == "linux" {
		if v := strings.TrimSpace(os.Getenv("XDG_DESKTOP_DIR")); v != "" {
			return v, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Desktop"), nil
}

// TempDir returns the system temp directory with symlinks resolved
// (/var/folders/... becomes /private/var/folders/... on macOS).
func TempDir() (string, error) {
	dir, err := filepath.EvalSymlinks(os.TempDir())
	if err != nil {
		return "", fmt.Errorf("failed to resolve temp directory: %w", err)
	}
	return dir, nil
}

// ResolveSaveDir returns the configured save directory, defaulting to
// the Desktop.
func (c *Config) ResolveSaveDir() (string, error) {
	if c != nil && c.SaveDir != "" {
		return c.SaveDir, nil
	}
	return DesktopDir()
}

// ResolveTempDir returns the configured scratch directory, defaulting to
// a bettershot folder under the system temp directory.
func (c *Config) ResolveTempDir() (string, error) {
	if c != nil && c.TempDir != "" {
		return c.TempDir, nil
	}
	dir, err := TempDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}
