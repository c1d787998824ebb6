package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listEventFilter string
	listPageFilter  string
	listUnassigned  bool
	listWatch       bool
)

var listEntriesCmd = &cobra.Command{
	Use:   "list-entries",
	Short: "List diary entries",
	Long: `List diary entries, newest first. Filter by event, by event and page, or
show only entries that belong to no event. With --watch the listing is live:
a fresh snapshot is printed after every change until interrupted.`,
	Example: `  photodiaryctl list-entries
  photodiaryctl list-entries --event <event-id>
  photodiaryctl list-entries --event <event-id> --page Beach
  photodiaryctl list-entries --unassigned
  photodiaryctl list-entries --event <event-id> --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listPageFilter != "" && listEventFilter == "" {
			fmt.Fprintln(os.Stderr, "Error: --page requires --event (pages exist within an event)")
			os.Exit(1)
		}
		if listUnassigned && listEventFilter != "" {
			fmt.Fprintln(os.Stderr, "Error: --unassigned cannot be combined with --event")
			os.Exit(1)
		}

		query := func() ([]entry.Entry, error) {
			switch {
			case listUnassigned:
				return diaryStore.UnassignedEntries()
			case listPageFilter != "":
				return diaryStore.EntriesForEventAndPage(listEventFilter, listPageFilter)
			case listEventFilter != "":
				return diaryStore.EntriesForEvent(listEventFilter)
			default:
				return diaryStore.AllEntries()
			}
		}

		if listWatch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			var ch <-chan []entry.Entry
			switch {
			case listUnassigned:
				ch = diaryStore.WatchUnassignedEntries(ctx)
			case listPageFilter != "":
				ch = diaryStore.WatchEntriesForEventAndPage(ctx, listEventFilter, listPageFilter)
			case listEventFilter != "":
				ch = diaryStore.WatchEntriesForEvent(ctx, listEventFilter)
			default:
				ch = diaryStore.WatchAllEntries(ctx)
			}
			for entries := range ch {
				printEntrySnapshot(entries)
			}
			return nil
		}

		entries, err := query()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		printEntrySnapshot(entries)
		return nil
	},
}

func printEntrySnapshot(entries []entry.Entry) {
	if jsonOutput {
		ui.FormatJSON(os.Stdout, entries)
		return
	}
	ui.FormatEntryList(os.Stdout, entries)
}

func init() {
	listEntriesCmd.Flags().StringVar(&listEventFilter, "event", "", "filter by event ID")
	listEntriesCmd.Flags().StringVar(&listPageFilter, "page", "", "filter by page name (requires --event)")
	listEntriesCmd.Flags().BoolVar(&listUnassigned, "unassigned", false, "show only entries with no event")
	listEntriesCmd.Flags().BoolVar(&listWatch, "watch", false, "keep printing snapshots as entries change")
	rootCmd.AddCommand(listEntriesCmd)
}
