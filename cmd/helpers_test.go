package cmd

import (
	"testing"

	"github.com/mkarlsen/photodiaryctl/internal/caption"
	"github.com/mkarlsen/photodiaryctl/internal/config"
	"github.com/mkarlsen/photodiaryctl/internal/diary"
	"github.com/mkarlsen/photodiaryctl/internal/storage/memory"
)

// setupTestEnv wires the package globals the way PersistentPreRunE does, with
// an in-memory backend and a caption service that is always down (so the
// workflow exercises its fallback).
func setupTestEnv(t *testing.T) {
	t.Helper()
	mem := memory.New()
	t.Cleanup(func() { mem.Close() })

	store = mem
	diaryStore = diary.New(mem)
	captioner = caption.NewWorkflow(caption.NewClient("http://127.0.0.1:1", 0))
	appConfig = &config.Config{}
	jsonOutput = false
}
