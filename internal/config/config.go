// Package config handles global quill configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the global quill configuration.
type Config struct {
	// DefaultVault is the name of the default vault (from Vaults).
	DefaultVault string `toml:"default_vault"`

	// Vault is a single vault path, used when no named vaults are set.
	Vault string `toml:"vault"`

	// Vaults maps vault names to paths.
	Vaults map[string]string `toml:"vaults"`

	// CacheTTLSeconds bounds how long listings are served from memory.
	// Zero means the built-in default.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`

	// IgnoredDirs are extra directory names skipped during vault scans, on
	// top of the built-in set.
	IgnoredDirs []string `toml:"ignored_dirs"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig holds optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for terminal output. Supported
	// values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme for rendered code blocks.
	CodeTheme string `toml:"code_theme"`
}

// VaultPath returns the path for a named vault, or the default vault when
// name is empty.
func (c *Config) VaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		if c.Vault != "" {
			return c.Vault, nil
		}
		return "", fmt.Errorf("no default vault configured")
	}
	if path, ok := c.Vaults[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("vault %q not found in config", name)
}

// CacheTTL converts the configured TTL into a duration, zero when unset.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load reads the configuration from the default location. A missing file is
// not an error and yields a zero config.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the config file path: ~/.config/quill/config.toml
// when present, else the OS-specific user config dir.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "quill", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "quill", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}
