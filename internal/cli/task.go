package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/quill/internal/ui"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Toggle task status in a note",
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <reference> <task text>",
	Short: "Mark a pending task as completed",
	Long: `Mark the first pending task with the given text as completed. Every
other byte of the note is left untouched. A task already completed is an
error so stale views get caught.

Example:
  quill task done trip "Book flight"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskStatus(args[0], args[1], true)
	},
}

var taskTodoCmd = &cobra.Command{
	Use:   "todo <reference> <task text>",
	Short: "Mark a completed task as pending",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskStatus(args[0], args[1], false)
	},
}

func setTaskStatus(ref, text string, completed bool) error {
	v, err := openVault()
	if err != nil {
		return err
	}
	n, err := v.Get(ref)
	if err != nil {
		return err
	}
	if err := v.SetTaskStatus(n.Path, text, completed); err != nil {
		return err
	}

	state := "pending"
	if completed {
		state = "done"
	}
	fmt.Println(ui.Successf("marked %q %s in %s", text, state, ui.FilePath(n.Path)))
	return nil
}

var tasksCmd = &cobra.Command{
	Use:   "tasks <reference>",
	Short: "List a note's tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := openVault()
		if err != nil {
			return err
		}
		n, err := v.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Print(ui.RenderTasks(n))
		return nil
	},
}

func init() {
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskTodoCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(tasksCmd)
}
