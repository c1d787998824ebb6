package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mkarlsen/photodiaryctl/internal/event"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var listEventsWatch bool

var listEventsCmd = &cobra.Command{
	Use:   "list-events",
	Short: "List events",
	Long:  "List events, newest first. With --watch the listing is live until interrupted.",
	Example: `  photodiaryctl list-events
  photodiaryctl list-events --json
  photodiaryctl list-events --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listEventsWatch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			for events := range diaryStore.WatchAllEvents(ctx) {
				printEventSnapshot(events)
			}
			return nil
		}

		events, err := diaryStore.AllEvents()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		printEventSnapshot(events)
		return nil
	},
}

func printEventSnapshot(events []event.Event) {
	if jsonOutput {
		ui.FormatJSON(os.Stdout, events)
		return
	}
	ui.FormatEventList(os.Stdout, events)
}

func init() {
	listEventsCmd.Flags().BoolVar(&listEventsWatch, "watch", false, "keep printing snapshots as events change")
	rootCmd.AddCommand(listEventsCmd)
}
