package diary

import (
	"context"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/event"
)

// Watch methods are the live-query surface: each returns a channel that
// carries an initial snapshot and then a fresh snapshot after every committed
// write, re-derived from the storage port. Snapshots are coalesced; a slow
// consumer skips intermediate states but always converges on the latest one.
// The channel closes when ctx is done or the storage is closed.

// WatchAllEvents streams snapshots of the event listing.
func (s *Store) WatchAllEvents(ctx context.Context) <-chan []event.Event {
	return watch(ctx, s, s.AllEvents)
}

// WatchAllEntries streams snapshots of the full entry listing.
func (s *Store) WatchAllEntries(ctx context.Context) <-chan []entry.Entry {
	return watch(ctx, s, s.AllEntries)
}

// WatchUnassignedEntries streams snapshots of entries belonging to no event.
func (s *Store) WatchUnassignedEntries(ctx context.Context) <-chan []entry.Entry {
	return watch(ctx, s, s.UnassignedEntries)
}

// WatchEntriesForEvent streams snapshots of an event's entries.
func (s *Store) WatchEntriesForEvent(ctx context.Context, eventID string) <-chan []entry.Entry {
	return watch(ctx, s, func() ([]entry.Entry, error) {
		return s.EntriesForEvent(eventID)
	})
}

// WatchEntriesForEventAndPage streams snapshots of a page's entries.
func (s *Store) WatchEntriesForEventAndPage(ctx context.Context, eventID, pageName string) <-chan []entry.Entry {
	return watch(ctx, s, func() ([]entry.Entry, error) {
		return s.EntriesForEventAndPage(eventID, pageName)
	})
}

// WatchPagesForEvent streams snapshots of an event's derived page names.
func (s *Store) WatchPagesForEvent(ctx context.Context, eventID string) <-chan []string {
	return watch(ctx, s, func() ([]string, error) {
		return s.PagesForEvent(eventID)
	})
}

func watch[T any](ctx context.Context, s *Store, query func() (T, error)) <-chan T {
	out := make(chan T, 1)
	changes := s.st.Subscribe(ctx)

	go func() {
		defer close(out)

		push := func() bool {
			snapshot, err := query()
			if err != nil {
				// Transient read failure; the next change signal retries.
				return true
			}
			for {
				select {
				case out <- snapshot:
					return true
				case <-ctx.Done():
					return false
				default:
				}
				// Replace a stale pending snapshot with the latest one.
				select {
				case <-out:
				default:
				}
			}
		}

		if !push() {
			return
		}
		for range changes {
			if !push() {
				return
			}
		}
	}()

	return out
}
