package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const appName = "tunes"

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Search  SearchConfig  `toml:"search"`
	Log     LogConfig     `toml:"log"`
}

// CatalogConfig contains iTunes Search API settings.
type CatalogConfig struct {
	BaseURL           string `toml:"base_url"`
	Country           string `toml:"country"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// SearchConfig contains incremental search settings.
type SearchConfig struct {
	DebounceMS int    `toml:"debounce_ms"`
	Scope      string `toml:"scope"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Debounce returns the configured quiet period as a [time.Duration].
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Region returns the configured storefront, falling back to the locale environment.
func (c CatalogConfig) Region() string {
	if c.Country != "" {
		return c.Country
	}
	return RegionFromEnv()
}

// Validate checks values that would otherwise fail deep inside a request.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog.base_url is required", ErrInvalidConfig)
	}
	if c.Catalog.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: catalog.requests_per_minute must be >= 0", ErrInvalidConfig)
	}
	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("%w: search.debounce_ms must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, os.ErrExist)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns path when it exists, otherwise the XDG config location
// (e.g. ~/.config/tunes/config.toml) when that exists. The empty string means
// no file was found and defaults apply.
func ResolveConfigPath(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if found, err := xdg.SearchConfigFile(filepath.Join(appName, "config.toml")); err == nil {
		return found
	}

	return ""
}

// UserConfigPath returns the XDG location for a new config file.
func UserConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appName, "config.toml"))
}

// DefaultLogPath returns the XDG state location for the TUI log file.
func DefaultLogPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, "tui.log"))
}
