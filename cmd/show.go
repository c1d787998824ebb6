package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an entry or event",
	Long:  "Show a single entry, or an event when no entry has the given ID.",
	Example: `  photodiaryctl show 550e8400-e29b-41d4-a716-446655440000
  photodiaryctl show 550e8400-e29b-41d4-a716-446655440000 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		e, err := diaryStore.Entry(id)
		if err == nil {
			if jsonOutput {
				ui.FormatJSON(os.Stdout, e)
			} else {
				ui.FormatEntryFull(os.Stdout, e)
			}
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		ev, err := diaryStore.Event(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Error: no entry or event with ID %s\n", id)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ev)
		} else {
			ui.FormatEventFull(os.Stdout, ev)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
