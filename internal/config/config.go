package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Default shortcuts, in the accelerator syntax of the tray app.
const (
	DefaultShortcutRegion = "CommandOrControl+Shift+2"
	DefaultShortcutScreen = "CommandOrControl+Shift+F"
	DefaultShortcutWindow = "CommandOrControl+Shift+D"
)

// Environment overrides, read after the config file.
const (
	EnvSaveDir  = "BETTERSHOT_SAVE_DIR"
	EnvTempDir  = "BETTERSHOT_TEMP_DIR"
	EnvLogLevel = "BETTERSHOT_LOG_LEVEL"
	EnvDotenv   = "BETTERSHOT_ENV"
)

// Config holds all configuration values
type Config struct {
	SaveDir         string `json:"save_dir,omitempty"`
	TempDir         string `json:"temp_dir,omitempty"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	PlaySound       bool   `json:"play_sound"`
	SoundFile       string `json:"sound_file,omitempty"`
	ShortcutRegion  string `json:"shortcut_region"`
	ShortcutScreen  string `json:"shortcut_screen"`
	ShortcutWindow  string `json:"shortcut_window"`
	History         bool   `json:"history"`
	LogLevel        string `json:"log_level,omitempty"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
	filePath string
)

// AllowedKeys are keys that users can modify
var AllowedKeys = []string{
	"save_dir", "temp_dir", "copy_to_clipboard", "play_sound", "sound_file",
	"shortcut_region", "shortcut_screen", "shortcut_window", "history", "log_level",
}

var boolKeys = map[string]bool{
	"copy_to_clipboard": true,
	"play_sound":        true,
	"history":           true,
}

// Defaults returns the configuration used before anything is saved.
// Only the region shortcut is bound out of the box.
func Defaults() *Config {
	return &Config{
		CopyToClipboard: true,
		PlaySound:       true,
		ShortcutRegion:  DefaultShortcutRegion,
		History:         true,
		LogLevel:        "info",
	}
}

// Load loads the configuration from disk
func Load() (*Config, error) {
	var err error
	once.Do(func() {
		filePath, err = GetConfigPath()
		if err != nil {
			instance = Defaults()
			return
		}

		var cfg *Config
		cfg, err = LoadFrom(filePath)
		if cfg == nil {
			cfg = Defaults()
		}
		instance = cfg
		loadDotenv()
		applyEnv(instance)
	})

	return instance, err
}

// LoadFrom reads a config file on top of Defaults. A missing file is not
// an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, cfg); err != nil {
			return Defaults(), fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}
	return cfg, nil
}

// loadDotenv loads .env next to the executable, or the file named by
// BETTERSHOT_ENV. Variables already set in the environment win.
func loadDotenv() {
	var candidates []string
	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	if alt := os.Getenv(EnvDotenv); alt != "" {
		candidates = append(candidates, alt)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSaveDir)); v != "" {
		cfg.SaveDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTempDir)); v != "" {
		cfg.TempDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

// Get returns the current configuration
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		cfg, _ := Load()
		return cfg
	}
	return instance
}

// Save persists the configuration to disk
func Save() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return errors.New("config not loaded")
	}

	if filePath == "" {
		var err error
		filePath, err = GetConfigPath()
		if err != nil {
			return err
		}
	}

	return WriteTo(filePath, instance)
}

// WriteTo writes cfg as JSON to path, creating the directory.
func WriteTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Set sets a configuration value
func Set(key, value string) error {
	mu.Lock()
	if instance == nil {
		instance = Defaults()
	}
	err := instance.Set(key, value)
	mu.Unlock()
	if err != nil {
		return err
	}

	return Save()
}

// Set validates and assigns one key.
func (c *Config) Set(key, value string) error {
	if boolKeys[key] {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q must be \"true\" or \"false\"", key)
		}
		switch key {
		case "copy_to_clipboard":
			c.CopyToClipboard = b
		case "play_sound":
			c.PlaySound = b
		case "history":
			c.History = b
		}
		return nil
	}

	switch key {
	case "save_dir":
		c.SaveDir = expandHome(value)
	case "temp_dir":
		c.TempDir = expandHome(value)
	case "sound_file":
		c.SoundFile = expandHome(value)
	case "shortcut_region":
		c.ShortcutRegion = value
	case "shortcut_screen":
		c.ShortcutScreen = value
	case "shortcut_window":
		c.ShortcutWindow = value
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error", "disabled":
			c.LogLevel = value
		default:
			return errors.New("\"log_level\" must be one of: debug, info, warn, error, disabled")
		}
	default:
		return errors.New("unknown config key: " + key)
	}
	return nil
}

// Value returns the string form of one key.
func (c *Config) Value(key string) (string, error) {
	switch key {
	case "save_dir":
		return c.SaveDir, nil
	case "temp_dir":
		return c.TempDir, nil
	case "copy_to_clipboard":
		return strconv.FormatBool(c.CopyToClipboard), nil
	case "play_sound":
		return strconv.FormatBool(c.PlaySound), nil
	case "sound_file":
		return c.SoundFile, nil
	case "shortcut_region":
		return c.ShortcutRegion, nil
	case "shortcut_screen":
		return c.ShortcutScreen, nil
	case "shortcut_window":
		return c.ShortcutWindow, nil
	case "history":
		return strconv.FormatBool(c.History), nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown key %q", key)
	}
}

// Clear resets all configuration to defaults
func Clear() error {
	mu.Lock()
	instance = Defaults()
	mu.Unlock()

	return Save()
}

// Path returns the config file path
func Path() string {
	if filePath == "" {
		filePath, _ = GetConfigPath()
	}
	return filePath
}

// IsAllowedKey checks if a key is user-modifiable
func IsAllowedKey(key string) bool {
	for _, k := range AllowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
