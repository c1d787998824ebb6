package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var listPagesWatch bool

var listPagesCmd = &cobra.Command{
	Use:   "list-pages <event-id>",
	Short: "List an event's pages",
	Long: `List the pages of an event. Pages are derived from the event's entries:
each distinct page name appears once, in the order first seen in the
newest-first entry listing.`,
	Example: `  photodiaryctl list-pages 550e8400-e29b-41d4-a716-446655440000
  photodiaryctl list-pages 550e8400-e29b-41d4-a716-446655440000 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID := args[0]

		if listPagesWatch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			for pages := range diaryStore.WatchPagesForEvent(ctx, eventID) {
				printPageSnapshot(pages)
			}
			return nil
		}

		pages, err := diaryStore.PagesForEvent(eventID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		printPageSnapshot(pages)
		return nil
	},
}

func printPageSnapshot(pages []string) {
	if jsonOutput {
		ui.FormatJSON(os.Stdout, pages)
		return
	}
	ui.FormatPageList(os.Stdout, pages)
}

func init() {
	listPagesCmd.Flags().BoolVar(&listPagesWatch, "watch", false, "keep printing snapshots as pages change")
	rootCmd.AddCommand(listPagesCmd)
}
