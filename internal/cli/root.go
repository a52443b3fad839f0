// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/config"
	"github.com/aidanlsb/quill/internal/ui"
	"github.com/aidanlsb/quill/internal/vault"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path
	configPath    string
	verboseFlag   bool

	// Resolved values
	resolvedVaultPath string
	cfg               *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - plain-text markdown notes with front matter",
	Long: `Quill manages a vault of plain markdown notes: YAML front matter for
metadata, checkbox tasks, wikilinks, and tags, with the files themselves as
the source of truth.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		level := slog.LevelWarn
		if verboseFlag {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		// Config management must work before any vault is registered.
		if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}

		// Resolve vault path: explicit path > named vault > config default.
		switch {
		case vaultPathFlag != "":
			resolvedVaultPath = vaultPathFlag
		case vaultName != "":
			resolvedVaultPath, err = cfg.VaultPath(vaultName)
			if err != nil {
				return fmt.Errorf("vault %q not found in config", vaultName)
			}
		default:
			resolvedVaultPath, err = cfg.VaultPath("")
			if err != nil {
				return fmt.Errorf(`no vault specified

Either:
  1. Use --vault <name> (from config)
  2. Use --vault-path /path/to/vault
  3. Set default_vault in %s`, config.DefaultPath())
			}
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")
}

// openVault opens the resolved vault with the configured cache and scan
// settings.
func openVault() (*vault.Vault, error) {
	opts := []vault.Option{
		vault.WithIgnoredDirs(cfg.IgnoredDirs...),
	}
	if ttl := cfg.CacheTTL(); ttl > 0 {
		opts = append(opts, vault.WithCacheTTL(ttl))
	}
	return vault.Open(resolvedVaultPath, opts...)
}
