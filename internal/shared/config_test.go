package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Catalog.BaseURL != "https://itunes.apple.com" {
			t.Errorf("expected base URL https://itunes.apple.com, got %s", config.Catalog.BaseURL)
		}

		if config.Catalog.RequestsPerMinute != 20 {
			t.Errorf("expected 20 requests per minute, got %d", config.Catalog.RequestsPerMinute)
		}

		if config.Search.Debounce() != 500*time.Millisecond {
			t.Errorf("expected 500ms debounce, got %v", config.Search.Debounce())
		}

		if config.Search.Scope != "album" {
			t.Errorf("expected album scope, got %s", config.Search.Scope)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "nested", "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Catalog.BaseURL != DefaultConfig().Catalog.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		err = CreateConfigFile(configPath)
		if err == nil {
			t.Fatal("creating config file again should fail")
		}
		if !errors.Is(err, os.ErrExist) {
			t.Errorf("expected os.ErrExist, got %v", err)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[catalog]
base_url = "http://localhost:9090"
country = "GB"

[search]
debounce_ms = 250
scope = "artist"

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Catalog.BaseURL != "http://localhost:9090" {
			t.Errorf("expected base URL http://localhost:9090, got %s", config.Catalog.BaseURL)
		}

		if config.Catalog.Region() != "GB" {
			t.Errorf("expected region GB, got %s", config.Catalog.Region())
		}

		if config.Search.Debounce() != 250*time.Millisecond {
			t.Errorf("expected 250ms debounce, got %v", config.Search.Debounce())
		}

		if config.Catalog.RequestsPerMinute != 20 {
			t.Errorf("expected missing key to keep default 20, got %d", config.Catalog.RequestsPerMinute)
		}

		if config.Log.Level != "debug" {
			t.Errorf("expected debug level, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig rejects invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[search]\ndebounce_ms = -1\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig with malformed TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[catalog\nbase_url="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("LoadConfig with missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected read error")
		}
	})

	t.Run("ResolveConfigPath prefers an existing explicit path", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if got := ResolveConfigPath(configPath); got != configPath {
			t.Errorf("expected %s, got %s", configPath, got)
		}
	})
}
