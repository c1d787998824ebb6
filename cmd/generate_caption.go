package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mkarlsen/photodiaryctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	captionImages []string
	captionPrompt string
)

var generateCaptionCmd = &cobra.Command{
	Use:   "generate-caption",
	Short: "Generate a caption for a set of images",
	Long: `Ask the captioning service for a caption describing the given images.
The command always prints some caption: when the service is unreachable or
returns nothing usable, a fixed placeholder meant for manual editing is
printed instead.`,
	Example: `  photodiaryctl generate-caption --image a.jpg --image b.jpg
  photodiaryctl generate-caption --image a.jpg --prompt "focus on the weather"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(captionImages) == 0 {
			fmt.Fprintln(os.Stderr, "Error: at least one --image is required")
			os.Exit(1)
		}

		text := captioner.GenerateCaption(context.Background(), captionImages, captionPrompt)

		if jsonOutput {
			ui.FormatJSON(os.Stdout, ui.CaptionResult{Caption: text})
		} else {
			fmt.Fprintln(os.Stdout, text)
		}
		return nil
	},
}

func init() {
	generateCaptionCmd.Flags().StringArrayVar(&captionImages, "image", nil, "image URI (repeatable)")
	generateCaptionCmd.Flags().StringVar(&captionPrompt, "prompt", "", "prompt to steer caption generation")
	rootCmd.AddCommand(generateCaptionCmd)
}
