package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var forceDeleteEvent bool

var deleteEventCmd = &cobra.Command{
	Use:   "delete-event <id>",
	Short: "Delete an event and all its entries",
	Long:  "Permanently delete an event, cascading to every entry that belongs to it. Requires confirmation unless --force is used.",
	Example: `  photodiaryctl delete-event 550e8400-e29b-41d4-a716-446655440000
  photodiaryctl delete-event 550e8400-e29b-41d4-a716-446655440000 --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		// Fetch event to confirm it exists and show what the cascade covers
		ev, err := diaryStore.Event(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Error: event %s not found\n", id)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		entries, err := diaryStore.EntriesForEvent(id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if !forceDeleteEvent {
			fmt.Fprintf(os.Stdout, "Event: %s (%s)\n", ev.Name, ev.ID)
			fmt.Fprintf(os.Stdout, "This will also delete %d entries.\n\n", len(entries))

			confirmed, err := ui.Confirm(os.Stdin, os.Stdout, "Delete this event? This cannot be undone.")
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(2)
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}

		if err := diaryStore.DeleteEvent(id); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ui.DeleteResult{ID: id, Deleted: true})
		} else {
			ui.FormatEventDeleted(os.Stdout, id)
		}
		return nil
	},
}

func init() {
	deleteEventCmd.Flags().BoolVar(&forceDeleteEvent, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteEventCmd)
}
