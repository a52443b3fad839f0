package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/config"
	"github.com/aidanlsb/quill/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the global configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.Info(activeConfigPath()))
	},
}

var configSetVaultCmd = &cobra.Command{
	Use:   "set-vault <name> <path>",
	Short: "Register a named vault",
	Long: `Register a vault directory under a name. The first registered vault
becomes the default.

Examples:
  quill config set-vault personal ~/notes
  quill config set-vault work /srv/notes/work`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, path := args[0], args[1]
		if registerVault(cfg, name, path) {
			fmt.Println(ui.Warning(fmt.Sprintf("replacing vault %q", name)))
		}

		var err error
		if configPath != "" {
			err = config.SaveTo(configPath, cfg)
		} else {
			err = config.Save(cfg)
		}
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("vault %q -> %s", name, ui.FilePath(path)))
		return nil
	},
}

func activeConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// registerVault adds or replaces a named vault, promoting the first one to
// the default. It reports whether an existing entry was replaced.
func registerVault(c *config.Config, name, path string) bool {
	if c.Vaults == nil {
		c.Vaults = make(map[string]string)
	}
	_, replaced := c.Vaults[name]
	c.Vaults[name] = path
	if c.DefaultVault == "" {
		c.DefaultVault = name
	}
	return replaced
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetVaultCmd)
	rootCmd.AddCommand(configCmd)
}
