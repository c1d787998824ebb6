package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/event"
	"github.com/mkarlsen/photodiaryctl/internal/storage"
	"github.com/mkarlsen/photodiaryctl/internal/storage/memory"
	"github.com/mkarlsen/photodiaryctl/internal/storage/sqlite"
)

type storageFactory func(t *testing.T) storage.Storage

func memoryFactory(t *testing.T) storage.Storage {
	t.Helper()
	s := memory.New()
	t.Cleanup(func() { s.Close() })
	return s
}

func sqliteFactory(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := sqlite.New(dir)
	if err != nil {
		t.Fatalf("creating sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeEntry(t *testing.T, caption string, at time.Time) entry.Entry {
	t.Helper()
	return entry.Entry{
		ID:        entry.NewID(),
		ImageURIs: []string{"file:///photos/a.jpg", "file:///photos/b.jpg"},
		Caption:   caption,
		Timestamp: at.UTC().Truncate(time.Millisecond),
	}
}

func makeEvent(t *testing.T, name string, at time.Time) event.Event {
	t.Helper()
	return event.Event{
		ID:        event.NewID(),
		Name:      name,
		EntryIDs:  []string{},
		Timestamp: at.UTC().Truncate(time.Millisecond),
	}
}

func runContractTests(t *testing.T, name string, factory storageFactory) {
	t.Run(name, func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Millisecond)

		t.Run("PutEntry and GetEntry", func(t *testing.T) {
			s := factory(t)
			e := makeEntry(t, "first swim of the year", base)
			e.PageName = "Beach"
			e.EventID = event.NewID()
			if err := s.PutEntry(e); err != nil {
				t.Fatalf("PutEntry: %v", err)
			}
			got, err := s.GetEntry(e.ID)
			if err != nil {
				t.Fatalf("GetEntry: %v", err)
			}
			if got.Caption != e.Caption || got.PageName != e.PageName || got.EventID != e.EventID {
				t.Errorf("got %+v, want %+v", got, e)
			}
			if len(got.ImageURIs) != 2 || got.ImageURIs[0] != e.ImageURIs[0] {
				t.Errorf("image URIs = %v, want %v", got.ImageURIs, e.ImageURIs)
			}
			if !got.Timestamp.Equal(e.Timestamp) {
				t.Errorf("timestamp = %v, want %v", got.Timestamp, e.Timestamp)
			}
		})

		t.Run("PutEntry replaces by ID", func(t *testing.T) {
			s := factory(t)
			e := makeEntry(t, "before", base)
			if err := s.PutEntry(e); err != nil {
				t.Fatalf("PutEntry: %v", err)
			}
			e.Caption = "after"
			e.PageName = "Renamed"
			if err := s.PutEntry(e); err != nil {
				t.Fatalf("PutEntry replace: %v", err)
			}
			got, err := s.GetEntry(e.ID)
			if err != nil {
				t.Fatalf("GetEntry: %v", err)
			}
			if got.Caption != "after" || got.PageName != "Renamed" {
				t.Errorf("replace lost fields: %+v", got)
			}
			all, err := s.ListAllEntries()
			if err != nil {
				t.Fatalf("ListAllEntries: %v", err)
			}
			if len(all) != 1 {
				t.Errorf("expected single row after replace, got %d", len(all))
			}
		})

		t.Run("GetEntry not found", func(t *testing.T) {
			s := factory(t)
			_, err := s.GetEntry(entry.NewID())
			if !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("DeleteEntry", func(t *testing.T) {
			s := factory(t)
			e := makeEntry(t, "doomed", base)
			if err := s.PutEntry(e); err != nil {
				t.Fatalf("PutEntry: %v", err)
			}
			if err := s.DeleteEntry(e.ID); err != nil {
				t.Fatalf("DeleteEntry: %v", err)
			}
			if _, err := s.GetEntry(e.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
			if err := s.DeleteEntry(e.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("expected ErrNotFound deleting twice, got %v", err)
			}
		})

		t.Run("Listings order newest first", func(t *testing.T) {
			s := factory(t)
			evID := event.NewID()
			for i := 0; i < 3; i++ {
				e := makeEntry(t, "entry", base.Add(time.Duration(i)*time.Second))
				e.EventID = evID
				e.PageName = "Trip"
				if err := s.PutEntry(e); err != nil {
					t.Fatalf("PutEntry %d: %v", i, err)
				}
			}
			entries, err := s.ListEntriesByEvent(evID)
			if err != nil {
				t.Fatalf("ListEntriesByEvent: %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(entries))
			}
			for i := 1; i < len(entries); i++ {
				if entries[i].Timestamp.After(entries[i-1].Timestamp) {
					t.Errorf("entries out of order at index %d", i)
				}
			}
		})

		t.Run("List filters by event and page", func(t *testing.T) {
			s := factory(t)
			evA, evB := event.NewID(), event.NewID()

			put := func(eventID, page string, at time.Time) entry.Entry {
				e := makeEntry(t, "x", at)
				e.EventID = eventID
				e.PageName = page
				if err := s.PutEntry(e); err != nil {
					t.Fatalf("PutEntry: %v", err)
				}
				return e
			}
			put(evA, "Trip", base)
			put(evA, "Food", base.Add(time.Second))
			put(evB, "Trip", base.Add(2*time.Second))
			unassigned := makeEntry(t, "free floating", base.Add(3*time.Second))
			if err := s.PutEntry(unassigned); err != nil {
				t.Fatalf("PutEntry: %v", err)
			}

			byEvent, err := s.ListEntriesByEvent(evA)
			if err != nil {
				t.Fatalf("ListEntriesByEvent: %v", err)
			}
			if len(byEvent) != 2 {
				t.Errorf("event A entries = %d, want 2", len(byEvent))
			}

			byPage, err := s.ListEntriesByEventAndPage(evA, "Trip")
			if err != nil {
				t.Fatalf("ListEntriesByEventAndPage: %v", err)
			}
			if len(byPage) != 1 || byPage[0].PageName != "Trip" || byPage[0].EventID != evA {
				t.Errorf("page listing = %+v", byPage)
			}

			free, err := s.ListUnassignedEntries()
			if err != nil {
				t.Fatalf("ListUnassignedEntries: %v", err)
			}
			if len(free) != 1 || free[0].ID != unassigned.ID {
				t.Errorf("unassigned listing = %+v", free)
			}

			all, err := s.ListAllEntries()
			if err != nil {
				t.Fatalf("ListAllEntries: %v", err)
			}
			if len(all) != 4 {
				t.Errorf("all entries = %d, want 4", len(all))
			}
		})

		t.Run("DeleteEntriesByEvent", func(t *testing.T) {
			s := factory(t)
			evA, evB := event.NewID(), event.NewID()
			for i, id := range []string{evA, evA, evB} {
				e := makeEntry(t, "x", base.Add(time.Duration(i)*time.Second))
				e.EventID = id
				if err := s.PutEntry(e); err != nil {
					t.Fatalf("PutEntry: %v", err)
				}
			}
			if err := s.DeleteEntriesByEvent(evA); err != nil {
				t.Fatalf("DeleteEntriesByEvent: %v", err)
			}
			remainA, _ := s.ListEntriesByEvent(evA)
			remainB, _ := s.ListEntriesByEvent(evB)
			if len(remainA) != 0 || len(remainB) != 1 {
				t.Errorf("after bulk delete: A=%d B=%d, want 0/1", len(remainA), len(remainB))
			}
		})

		t.Run("DeleteEntriesByEventAndPage scopes to both keys", func(t *testing.T) {
			s := factory(t)
			evA, evB := event.NewID(), event.NewID()

			put := func(eventID, page string, at time.Time) {
				e := makeEntry(t, "x", at)
				e.EventID = eventID
				e.PageName = page
				if err := s.PutEntry(e); err != nil {
					t.Fatalf("PutEntry: %v", err)
				}
			}
			put(evA, "Trip", base)
			put(evA, "Trip", base.Add(time.Second))
			put(evA, "Food", base.Add(2*time.Second))
			put(evB, "Trip", base.Add(3*time.Second))

			if err := s.DeleteEntriesByEventAndPage(evA, "Trip"); err != nil {
				t.Fatalf("DeleteEntriesByEventAndPage: %v", err)
			}

			remainA, _ := s.ListEntriesByEvent(evA)
			if len(remainA) != 1 || remainA[0].PageName != "Food" {
				t.Errorf("event A after page delete = %+v", remainA)
			}
			remainB, _ := s.ListEntriesByEvent(evB)
			if len(remainB) != 1 {
				t.Errorf("event B lost entries to another event's page delete: %+v", remainB)
			}
		})

		t.Run("Event round trip and ordering", func(t *testing.T) {
			s := factory(t)
			older := makeEvent(t, "Older", base)
			older.CoverImageURI = "file:///covers/older.jpg"
			older.EntryIDs = []string{"e1", "e2"}
			newer := makeEvent(t, "Newer", base.Add(time.Minute))

			if err := s.PutEvent(older); err != nil {
				t.Fatalf("PutEvent: %v", err)
			}
			if err := s.PutEvent(newer); err != nil {
				t.Fatalf("PutEvent: %v", err)
			}

			got, err := s.GetEvent(older.ID)
			if err != nil {
				t.Fatalf("GetEvent: %v", err)
			}
			if got.Name != "Older" || got.CoverImageURI != older.CoverImageURI {
				t.Errorf("event = %+v", got)
			}
			if len(got.EntryIDs) != 2 || got.EntryIDs[0] != "e1" {
				t.Errorf("entry IDs = %v", got.EntryIDs)
			}

			events, err := s.ListAllEvents()
			if err != nil {
				t.Fatalf("ListAllEvents: %v", err)
			}
			if len(events) != 2 || events[0].ID != newer.ID {
				t.Errorf("events order = %+v", events)
			}
		})

		t.Run("GetEvent and DeleteEvent not found", func(t *testing.T) {
			s := factory(t)
			if _, err := s.GetEvent(event.NewID()); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetEvent: expected ErrNotFound, got %v", err)
			}
			if err := s.DeleteEvent(event.NewID()); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("DeleteEvent: expected ErrNotFound, got %v", err)
			}
		})

		t.Run("PutEntryLinked", func(t *testing.T) {
			s := factory(t)
			linker, ok := s.(storage.EntryLinker)
			if !ok {
				t.Skipf("%T does not implement EntryLinker", s)
			}

			ev := makeEvent(t, "Linked", base)
			if err := s.PutEvent(ev); err != nil {
				t.Fatalf("PutEvent: %v", err)
			}
			e := makeEntry(t, "linked entry", base)
			e.EventID = ev.ID
			if err := linker.PutEntryLinked(e, ev.ID); err != nil {
				t.Fatalf("PutEntryLinked: %v", err)
			}

			gotEv, err := s.GetEvent(ev.ID)
			if err != nil {
				t.Fatalf("GetEvent: %v", err)
			}
			if len(gotEv.EntryIDs) != 1 || gotEv.EntryIDs[0] != e.ID {
				t.Errorf("entry IDs = %v, want [%s]", gotEv.EntryIDs, e.ID)
			}

			// Re-linking the same entry must not duplicate the membership.
			if err := linker.PutEntryLinked(e, ev.ID); err != nil {
				t.Fatalf("PutEntryLinked again: %v", err)
			}
			gotEv, _ = s.GetEvent(ev.ID)
			if len(gotEv.EntryIDs) != 1 {
				t.Errorf("entry IDs after relink = %v", gotEv.EntryIDs)
			}
		})

		t.Run("PutEntryLinked missing event keeps entry", func(t *testing.T) {
			s := factory(t)
			linker, ok := s.(storage.EntryLinker)
			if !ok {
				t.Skipf("%T does not implement EntryLinker", s)
			}
			e := makeEntry(t, "orphan-ish", base)
			e.EventID = event.NewID()
			if err := linker.PutEntryLinked(e, e.EventID); err != nil {
				t.Fatalf("PutEntryLinked: %v", err)
			}
			if _, err := s.GetEntry(e.ID); err != nil {
				t.Errorf("entry should persist without its event: %v", err)
			}
		})

		t.Run("Subscribe signals committed writes", func(t *testing.T) {
			s := factory(t)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch := s.Subscribe(ctx)
			if err := s.PutEntry(makeEntry(t, "watched", base)); err != nil {
				t.Fatalf("PutEntry: %v", err)
			}

			select {
			case _, ok := <-ch:
				if !ok {
					t.Fatal("subscription closed unexpectedly")
				}
			case <-time.After(2 * time.Second):
				t.Fatal("no change signal after write")
			}

			cancel()
			select {
			case _, ok := <-ch:
				if ok {
					// A pending coalesced signal may arrive first; the close follows.
					if _, ok := <-ch; ok {
						t.Error("channel still open after context cancel")
					}
				}
			case <-time.After(2 * time.Second):
				t.Error("channel not closed after context cancel")
			}
		})
	})
}

func TestStorageContract(t *testing.T) {
	runContractTests(t, "memory", memoryFactory)
	runContractTests(t, "sqlite", sqliteFactory)
}
