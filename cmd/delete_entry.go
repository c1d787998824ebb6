package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var forceDeleteEntry bool

var deleteEntryCmd = &cobra.Command{
	Use:   "delete-entry <id>",
	Short: "Delete a diary entry",
	Long:  "Permanently delete a single diary entry. Requires confirmation unless --force is used.",
	Example: `  photodiaryctl delete-entry 550e8400-e29b-41d4-a716-446655440000
  photodiaryctl delete-entry 550e8400-e29b-41d4-a716-446655440000 --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		// Fetch entry to confirm it exists and show a preview
		e, err := diaryStore.Entry(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Error: entry %s not found\n", id)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if !forceDeleteEntry {
			fmt.Fprintf(os.Stdout, "Entry: %s (%s)\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(os.Stdout, "Preview: %s\n\n", e.Preview(60))

			confirmed, err := ui.Confirm(os.Stdin, os.Stdout, "Delete this entry? This cannot be undone.")
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(2)
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}

		if err := diaryStore.DeleteEntry(id); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ui.DeleteResult{ID: id, Deleted: true})
		} else {
			ui.FormatEntryDeleted(os.Stdout, id)
		}
		return nil
	},
}

func init() {
	deleteEntryCmd.Flags().BoolVar(&forceDeleteEntry, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteEntryCmd)
}
