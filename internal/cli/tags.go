package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/ui"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in the vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}
		notes, err := v.List(nil)
		if err != nil {
			return err
		}
		fmt.Print(ui.RenderTagCounts(notes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
