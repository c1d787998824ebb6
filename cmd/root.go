package cmd

import (
	"fmt"

	"github.com/mkarlsen/photodiaryctl/internal/caption"
	"github.com/mkarlsen/photodiaryctl/internal/config"
	"github.com/mkarlsen/photodiaryctl/internal/diary"
	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/storage/memory"
	"github.com/mkarlsen/photodiaryctl/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          storage.Storage
	diaryStore     *diary.Store
	captioner      *caption.Workflow
)

var rootCmd = &cobra.Command{
	Use:   "photodiaryctl",
	Short: "A photo-diary management CLI tool",
	Long: `photodiaryctl manages a photo diary: entries (images plus a caption)
grouped into pages under events, with captions generated by a remote
captioning service when one is reachable.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Override storage backend from flag
		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		// Initialize storage backend
		switch appConfig.Storage {
		case "sqlite":
			store, err = sqlite.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing sqlite storage: %w", err)
			}
		case "memory":
			store = memory.New()
		default:
			return fmt.Errorf("unknown storage backend: %s", appConfig.Storage)
		}

		var opts []diary.Option
		if appConfig.AtomicLinking {
			opts = append(opts, diary.WithAtomicLinking())
		}
		diaryStore = diary.New(store, opts...)

		client := caption.NewClient(appConfig.Caption.BaseURL, appConfig.Caption.TimeoutDuration())
		captioner = caption.NewWorkflow(client, caption.WithFallback(appConfig.Caption.Fallback))

		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (sqlite|memory)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
