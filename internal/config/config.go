// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/mkedit/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config                     `toml:"logger"` // [logger] table
	Editor  EditorConfig                      `toml:"editor"`
	Plugins map[string]map[string]interface{} `toml:"plugins"` // [plugins.<name>] tables
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	// MergeWindowMs is how close (in ms) two edits of the same property must
	// be to share one undo step. Negative disables merging.
	MergeWindowMs   int    `toml:"merge_window_ms"`
	SystemClipboard bool   `toml:"system_clipboard"`
	MasksFile       string `toml:"masks_file"`
	ThemeFile       string `toml:"theme_file"` // Empty uses the built-in theme
	StatusBarHeight int    `toml:"status_bar_height"`
}

// PluginValue returns a setting from the [plugins.<name>] table.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// MergeWindow is MergeWindowMs as a duration.
func (e EditorConfig) MergeWindow() time.Duration {
	return time.Duration(e.MergeWindowMs) * time.Millisecond
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			MergeWindowMs:   DefaultMergeWindowMs,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// DefaultDir is the per-user config directory, or "" when unknown.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config, verbose bool) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Editor.MasksFile == "" {
		if dir := DefaultDir(); dir != "" {
			c.Editor.MasksFile = filepath.Join(dir, DefaultMasksFileName)
		}
	}
}

// build loads defaults, then the file, then flag overrides, then validates.
func build(configFilePath string, flags *Flags, verbose bool) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if dir := DefaultDir(); dir != "" {
			effectivePath = filepath.Join(dir, DefaultConfigFileName)
		}
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg, verbose)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, verbose)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main, before the logger is set up.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = build(configFilePath, flags, false)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
