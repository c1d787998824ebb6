package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var renameEventCmd = &cobra.Command{
	Use:     "rename-event <id> <new-name>",
	Short:   "Rename an event",
	Example: `  photodiaryctl rename-event 550e8400-e29b-41d4-a716-446655440000 "Winter Trip"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := diaryStore.RenameEvent(args[0], args[1])
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				fmt.Fprintf(os.Stderr, "Error: event %s not found\n", args[0])
				os.Exit(1)
			case errors.Is(err, storage.ErrValidation):
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(1)
			default:
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(2)
			}
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ev)
		} else {
			fmt.Fprintf(os.Stdout, "Renamed event %s to %q.\n", ev.ID, ev.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameEventCmd)
}
