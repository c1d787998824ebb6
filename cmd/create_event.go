package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var createEventCover string

var createEventCmd = &cobra.Command{
	Use:   "create-event <name>",
	Short: "Create a new event",
	Long:  "Create a new named event. Entries are grouped into pages under events.",
	Example: `  photodiaryctl create-event "Summer Trip"
  photodiaryctl create-event "Summer Trip" --cover file:///photos/beach.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := diaryStore.CreateEvent(args[0], createEventCover)
		if err != nil {
			if errors.Is(err, storage.ErrValidation) {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ev)
		} else {
			ui.FormatEventCreated(os.Stdout, ev)
		}
		return nil
	},
}

func init() {
	createEventCmd.Flags().StringVar(&createEventCover, "cover", "", "cover image URI")
	rootCmd.AddCommand(createEventCmd)
}
