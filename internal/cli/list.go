package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/dates"
	"github.com/aidanlsb/quill/internal/filter"
	"github.com/aidanlsb/quill/internal/ui"
)

var (
	listTags       []string
	listMatchAll   bool
	listFrom       string
	listUntil      string
	listProperties []string
	listPending    bool
	listNoPending  bool
	listSearch     string
	listSortBy     string
	listReverse    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the vault",
	Long: `List notes, optionally narrowed by tags, date ranges, front-matter
properties, pending tasks, and full-text search.

Examples:
  quill list
  quill list --tag trip --tag france
  quill list --tag trip --tag france --match-all
  quill list --from 2025-06-01 --until 2025-06-30
  quill list --property status=active --has-pending
  quill list --search louvre --sort title --reverse`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}

		q := filter.Query{
			Tags:          listTags,
			Search:        listSearch,
			Reverse:       listReverse,
			SortBy:        filter.SortField(listSortBy),
			CaseSensitive: false,
		}
		if listMatchAll {
			q.TagMode = filter.TagModeAnd
		}
		if listFrom != "" {
			t, err := dates.ParseDateArg(listFrom, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			q.From = &t
		}
		if listUntil != "" {
			t, err := dates.ParseDateArg(listUntil, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --until date: %w", err)
			}
			q.Until = &t
		}
		if q.Properties, err = parseKeyValues(listProperties); err != nil {
			return err
		}
		if listPending {
			val := true
			q.HasPending = &val
		} else if listNoPending {
			val := false
			q.HasPending = &val
		}

		notes, err := v.Find(q)
		if err != nil {
			return err
		}

		fmt.Print(ui.RenderNoteList(notes))
		return nil
	},
}

func init() {
	listCmd.Flags().StringArrayVarP(&listTags, "tag", "t", nil, "Filter by tag (repeatable)")
	listCmd.Flags().BoolVar(&listMatchAll, "match-all", false, "Require all tags instead of any")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Start of date range (YYYY-MM-DD, today, yesterday)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "End of date range (inclusive)")
	listCmd.Flags().StringArrayVarP(&listProperties, "property", "p", nil, "Filter by front-matter key=value (repeatable)")
	listCmd.Flags().BoolVar(&listPending, "has-pending", false, "Only notes with pending tasks")
	listCmd.Flags().BoolVar(&listNoPending, "no-pending", false, "Only notes without pending tasks")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Substring search over title and body")
	listCmd.Flags().StringVar(&listSortBy, "sort", "", "Sort by: title, start_date, end_date, created, modified, path")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "Reverse the sort order")
	rootCmd.AddCommand(listCmd)
}
