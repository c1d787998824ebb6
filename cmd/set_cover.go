package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var setCoverCmd = &cobra.Command{
	Use:     "set-cover <event-id> <image-uri>",
	Short:   "Set an event's cover image",
	Example: `  photodiaryctl set-cover 550e8400-e29b-41d4-a716-446655440000 file:///photos/cover.jpg`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := diaryStore.SetEventCover(args[0], args[1])
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Error: event %s not found\n", args[0])
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ev)
		} else {
			fmt.Fprintf(os.Stdout, "Set cover for event %s.\n", ev.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCoverCmd)
}
