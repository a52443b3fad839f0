package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vault statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}
		stats, err := v.Stats()
		if err != nil {
			return err
		}

		fmt.Println(ui.Header("Vault " + v.Root()))
		fmt.Println(ui.RenderStatsRow("notes", fmt.Sprintf("%d", stats.Notes)))
		fmt.Println(ui.RenderStatsRow("size", fmt.Sprintf("%d bytes", stats.TotalBytes)))
		fmt.Println(ui.RenderStatsRow("tasks", fmt.Sprintf("%d (%d pending)", stats.Tasks, stats.PendingTasks)))
		fmt.Println(ui.RenderStatsRow("tags", fmt.Sprintf("%d", stats.Tags)))
		if stats.LastModifiedPath != "" {
			fmt.Println(ui.RenderStatsRow("last modified",
				fmt.Sprintf("%s (%s)", ui.FilePath(stats.LastModifiedPath), stats.LastModifiedAt.Format("2006-01-02 15:04"))))
		}
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload every note from disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}

		spinner := ui.NewSpinner("reloading vault")
		spinner.Start()
		if err := v.Refresh(); err != nil {
			spinner.Stop()
			return err
		}
		stats, err := v.Stats()
		if err != nil {
			spinner.Stop()
			return err
		}
		spinner.StopWithMessage(ui.Successf("reloaded %d notes", stats.Notes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(refreshCmd)
}
