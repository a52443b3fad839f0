package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/quill/internal/atomicfile"
)

// persistedConfig mirrors Config with omitempty pointers so Save never
// writes zero-valued keys into the file.
type persistedConfig struct {
	DefaultVault    *string              `toml:"default_vault,omitempty"`
	Vault           *string              `toml:"vault,omitempty"`
	Vaults          map[string]string    `toml:"vaults,omitempty"`
	CacheTTLSeconds *int                 `toml:"cache_ttl_seconds,omitempty"`
	IgnoredDirs     []string             `toml:"ignored_dirs,omitempty"`
	UI              *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the config to an explicit path, creating parent directories
// as needed.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toPersisted(cfg)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func toPersisted(cfg *Config) persistedConfig {
	out := persistedConfig{
		DefaultVault: nonEmptyPtr(cfg.DefaultVault),
		Vault:        nonEmptyPtr(cfg.Vault),
		IgnoredDirs:  cfg.IgnoredDirs,
	}
	if len(cfg.Vaults) > 0 {
		out.Vaults = cfg.Vaults
	}
	if cfg.CacheTTLSeconds > 0 {
		ttl := cfg.CacheTTLSeconds
		out.CacheTTLSeconds = &ttl
	}
	accent := nonEmptyPtr(cfg.UI.Accent)
	theme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || theme != nil {
		out.UI = &persistedUISettings{Accent: accent, CodeTheme: theme}
	}
	return out
}

func nonEmptyPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
