package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/ui"
)

var (
	appendSeparator  string
	prependSeparator string
	setMetaFlags     []string
)

var appendCmd = &cobra.Command{
	Use:   "append <reference> <text>",
	Short: "Append text to a note's body",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}
		n, err := v.Get(args[0])
		if err != nil {
			return err
		}
		if err := v.Append(n.Path, args[1], appendSeparator); err != nil {
			return err
		}
		fmt.Println(ui.Successf("appended to %s", ui.FilePath(n.Path)))
		return nil
	},
}

var prependCmd = &cobra.Command{
	Use:   "prepend <reference> <text>",
	Short: "Prepend text to a note's body",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}
		n, err := v.Get(args[0])
		if err != nil {
			return err
		}
		if err := v.Prepend(n.Path, args[1], prependSeparator); err != nil {
			return err
		}
		fmt.Println(ui.Successf("prepended to %s", ui.FilePath(n.Path)))
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <reference> --meta key=value",
	Short: "Update a note's front matter",
	Long: `Merge key=value pairs into a note's front matter. Tag values union
with the existing tag set; other keys are overwritten.

Examples:
  quill set trip --meta status=booked
  quill set trip --meta "tags=[planning]"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := parseKeyValues(setMetaFlags)
		if err != nil {
			return err
		}
		if len(meta) == 0 {
			return fmt.Errorf("nothing to update: pass at least one --meta key=value")
		}

		v, err := openVault()
		if err != nil {
			return err
		}
		n, err := v.Get(args[0])
		if err != nil {
			return err
		}
		if err := v.Update(n.Path, nil, meta); err != nil {
			return err
		}
		fmt.Println(ui.Successf("updated %s", ui.FilePath(n.Path)))
		return nil
	},
}

func init() {
	appendCmd.Flags().StringVar(&appendSeparator, "separator", "", `Separator between body and text (default "\n\n")`)
	prependCmd.Flags().StringVar(&prependSeparator, "separator", "", `Separator between text and body (default "\n\n")`)
	setCmd.Flags().StringArrayVarP(&setMetaFlags, "meta", "m", nil, "Front-matter key=value (repeatable)")
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(prependCmd)
	rootCmd.AddCommand(setCmd)
}
