package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/ui"
)

var showRawFlag bool

var showCmd = &cobra.Command{
	Use:   "show <reference>",
	Short: "Show a note",
	Long: `Show a note's content. The reference can be a vault-relative path
(trip.md), a path without extension (trip), or a filename stem matched
case-insensitively (france-trip for "France Trip.md").

In a terminal the markdown is rendered; use --raw for the exact file bytes.

Examples:
  quill show trip
  quill show notes/france-trip
  quill show trip.md --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}
		n, err := v.Get(args[0])
		if err != nil {
			return err
		}

		if showRawFlag {
			fmt.Print(n.RawContent)
			return nil
		}

		dc := ui.NewDisplayContext()
		if !dc.IsTTY {
			fmt.Print(n.RawContent)
			return nil
		}

		rendered, err := ui.RenderMarkdown(n.Body, dc.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			return err
		}
		fmt.Println(ui.AccentBold.Render(n.Title) + " " + ui.Hint(n.Path))
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRawFlag, "raw", false, "Output raw file content without rendering")
	rootCmd.AddCommand(showCmd)
}
