package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/dates"
	"github.com/aidanlsb/quill/internal/frontmatter"
	"github.com/aidanlsb/quill/internal/ui"
)

var (
	newBody     string
	newTags     []string
	newMeta     []string
	newDate     string
	newPathFlag string
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new note",
	Long: `Create a note. The filename is derived from the title unless --path
is given; filesystem-unsafe characters become underscores.

Examples:
  quill new "France Trip"
  quill new "France Trip" --tag trip --tag france --body "# Plan"
  quill new "France Trip" --date 2025-06-10
  quill new "Standup" --path meetings/2025-06-02.md --meta status=draft`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}

		meta, err := parseKeyValues(newMeta)
		if err != nil {
			return err
		}
		if len(newTags) > 0 {
			if meta == nil {
				meta = map[string]any{}
			}
			meta["tags"] = frontmatter.CleanTags(newTags)
		}
		if newDate != "" {
			d, err := dates.ParseDate(newDate)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			if meta == nil {
				meta = map[string]any{}
			}
			meta["date"] = d.Format(dates.DateLayout)
		}

		n, err := v.Create(args[0], newBody, meta, newPathFlag)
		if err != nil {
			return err
		}

		fmt.Println(ui.Successf("created %s", ui.FilePath(n.Path)))
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newBody, "body", "b", "", "Initial note body")
	newCmd.Flags().StringArrayVarP(&newTags, "tag", "t", nil, "Tag for the new note (repeatable)")
	newCmd.Flags().StringArrayVarP(&newMeta, "meta", "m", nil, "Front-matter key=value (repeatable)")
	newCmd.Flags().StringVar(&newDate, "date", "", "Date for the new note (strict YYYY-MM-DD)")
	newCmd.Flags().StringVar(&newPathFlag, "path", "", "Explicit vault-relative path for the note")
	rootCmd.AddCommand(newCmd)
}
