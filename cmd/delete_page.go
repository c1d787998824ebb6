package cmd

import (
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var forceDeletePage bool

var deletePageCmd = &cobra.Command{
	Use:   "delete-page <event-id> <page-name>",
	Short: "Delete a page and its entries",
	Long: `Permanently delete every entry of an event that carries the given page
name. Pages have no record of their own: deleting all its entries is what
deleting a page means, and saving a new entry with the same name later makes
the page reappear.`,
	Example: `  photodiaryctl delete-page 550e8400-e29b-41d4-a716-446655440000 "Beach"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, pageName := args[0], args[1]

		entries, err := diaryStore.EntriesForEventAndPage(eventID, pageName)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		if len(entries) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no entries on page %q of event %s\n", pageName, eventID)
			os.Exit(1)
		}

		if !forceDeletePage {
			fmt.Fprintf(os.Stdout, "Page %q of event %s has %d entries.\n\n", pageName, eventID, len(entries))

			confirmed, err := ui.Confirm(os.Stdin, os.Stdout, "Delete this page? This cannot be undone.")
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(2)
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}

		if err := diaryStore.DeletePage(eventID, pageName); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ui.PageDeleteResult{EventID: eventID, PageName: pageName, Deleted: true})
		} else {
			ui.FormatPageDeleted(os.Stdout, eventID, pageName)
		}
		return nil
	},
}

func init() {
	deletePageCmd.Flags().BoolVar(&forceDeletePage, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deletePageCmd)
}
