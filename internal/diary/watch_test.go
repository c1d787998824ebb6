package diary_test

import (
	"context"
	"testing"
	"time"

	"github.com/mkarlsen/photodiaryctl/internal/diary"
	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/storage/memory"
)

func recvSnapshot[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed unexpectedly")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	panic("unreachable")
}

// waitFor drains snapshots until cond holds or the deadline passes. Snapshots
// are coalesced, so intermediate states may be skipped.
func waitFor[T any](t *testing.T, ch <-chan T, cond func(T) bool) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed unexpectedly")
			}
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("condition never observed")
		}
	}
}

func TestWatchEntriesForEvent(t *testing.T) {
	mem := memory.New()
	t.Cleanup(func() { mem.Close() })
	s := diary.New(mem)

	ev, _ := s.CreateEvent("Trip", "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.WatchEntriesForEvent(ctx, ev.ID)
	if initial := recvSnapshot(t, ch); len(initial) != 0 {
		t.Errorf("initial snapshot = %+v, want empty", initial)
	}

	res, err := s.SaveEntry(diary.SaveRequest{
		ImageURIs: []string{"file:///a.jpg"},
		Caption:   "cap",
		PageName:  "page",
		EventID:   ev.ID,
	})
	if err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}

	snap := waitFor(t, ch, func(entries []entry.Entry) bool { return len(entries) == 1 })
	if snap[0].ID != res.Entry.ID {
		t.Errorf("snapshot entry = %s, want %s", snap[0].ID, res.Entry.ID)
	}

	if err := s.DeleteEntry(res.Entry.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	waitFor(t, ch, func(entries []entry.Entry) bool { return len(entries) == 0 })
}

func TestWatchPagesForEvent(t *testing.T) {
	mem := memory.New()
	t.Cleanup(func() { mem.Close() })
	s := diary.New(mem)

	ev, _ := s.CreateEvent("Trip", "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.WatchPagesForEvent(ctx, ev.ID)
	recvSnapshot(t, ch)

	if _, err := s.SaveEntry(diary.SaveRequest{
		ImageURIs: []string{"file:///a.jpg"},
		Caption:   "cap",
		PageName:  "Beach",
		EventID:   ev.ID,
	}); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	waitFor(t, ch, func(pages []string) bool {
		return len(pages) == 1 && pages[0] == "Beach"
	})

	// Deleting the page's only entry makes the page disappear.
	if err := s.DeletePage(ev.ID, "Beach"); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}
	waitFor(t, ch, func(pages []string) bool { return len(pages) == 0 })
}

func TestWatchClosesWithContext(t *testing.T) {
	mem := memory.New()
	t.Cleanup(func() { mem.Close() })
	s := diary.New(mem)

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.WatchAllEvents(ctx)
	recvSnapshot(t, ch)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
