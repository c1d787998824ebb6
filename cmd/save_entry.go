package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/diary"
	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	saveImages   []string
	saveCaption  string
	savePage     string
	saveEvent    string
	saveExisting string
	saveGenerate bool
	savePrompt   string
)

var saveEntryCmd = &cobra.Command{
	Use:   "save-entry",
	Short: "Save a diary entry",
	Long: `Save a diary entry: one or more images, a caption, and a page name,
optionally linked to an event. With --id an existing entry is replaced in
place, keeping its page and event when the flags are omitted. With --generate
the caption is produced by the captioning service first (falling back to an
editable placeholder when the service is unreachable).`,
	Example: `  photodiaryctl save-entry --image a.jpg --caption "First swim" --page Beach
  photodiaryctl save-entry --image a.jpg --image b.jpg --generate --page Beach --event <event-id>
  photodiaryctl save-entry --id <entry-id> --image a.jpg --caption "Edited"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		capText := saveCaption
		if saveGenerate && capText == "" {
			capText = captioner.GenerateCaption(context.Background(), saveImages, savePrompt)
		}

		res, err := diaryStore.SaveEntry(diary.SaveRequest{
			ImageURIs:  saveImages,
			Caption:    capText,
			PageName:   savePage,
			EventID:    saveEvent,
			ExistingID: saveExisting,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		if res.Status == diary.StatusNothingToSave {
			fmt.Fprintln(os.Stderr, res.Message)
			os.Exit(1)
		}

		if jsonOutput {
			ui.FormatJSON(os.Stdout, res.Entry)
		} else {
			ui.FormatEntrySaved(os.Stdout, res.Entry)
		}
		return nil
	},
}

func init() {
	saveEntryCmd.Flags().StringArrayVar(&saveImages, "image", nil, "image URI (repeatable)")
	saveEntryCmd.Flags().StringVarP(&saveCaption, "caption", "c", "", "caption text")
	saveEntryCmd.Flags().StringVar(&savePage, "page", "", "page name (required for new entries)")
	saveEntryCmd.Flags().StringVar(&saveEvent, "event", "", "event ID to link the entry to")
	saveEntryCmd.Flags().StringVar(&saveExisting, "id", "", "existing entry ID to update")
	saveEntryCmd.Flags().BoolVar(&saveGenerate, "generate", false, "generate the caption via the captioning service")
	saveEntryCmd.Flags().StringVar(&savePrompt, "prompt", "", "prompt to steer caption generation (with --generate)")
	rootCmd.AddCommand(saveEntryCmd)
}
