package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/event"
	"github.com/mkarlsen/photodiaryctl/internal/storage"
)

// Store implements storage.Storage with in-process maps. It backs the
// "memory" CLI backend and serves as the test substrate for the storage
// contract.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]entry.Entry
	events   map[string]event.Event
	notifier *storage.Notifier
}

// New creates an empty in-memory storage backend.
func New() *Store {
	return &Store{
		entries:  make(map[string]entry.Entry),
		events:   make(map[string]event.Event),
		notifier: storage.NewNotifier(),
	}
}

// PutEntry inserts or replaces an entry by ID.
func (s *Store) PutEntry(e entry.Entry) error {
	s.mu.Lock()
	s.entries[e.ID] = cloneEntry(e)
	s.mu.Unlock()
	s.notifier.Broadcast()
	return nil
}

// PutEntryLinked persists an entry and appends its ID to the owning event's
// membership list under a single lock section. A missing event is skipped.
func (s *Store) PutEntryLinked(e entry.Entry, eventID string) error {
	s.mu.Lock()
	s.entries[e.ID] = cloneEntry(e)
	if ev, ok := s.events[eventID]; ok {
		if ev.LinkEntry(e.ID) {
			s.events[eventID] = ev
		}
	}
	s.mu.Unlock()
	s.notifier.Broadcast()
	return nil
}

// DeleteEntry removes an entry by ID.
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return storage.ErrNotFound
	}
	s.notifier.Broadcast()
	return nil
}

// DeleteEntriesByEvent removes every entry belonging to the event.
func (s *Store) DeleteEntriesByEvent(eventID string) error {
	s.mu.Lock()
	for id, e := range s.entries {
		if e.EventID == eventID {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
	s.notifier.Broadcast()
	return nil
}

// DeleteEntriesByEventAndPage removes every entry matching both the event and
// the page name.
func (s *Store) DeleteEntriesByEventAndPage(eventID, pageName string) error {
	s.mu.Lock()
	for id, e := range s.entries {
		if e.EventID == eventID && e.PageName == pageName {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
	s.notifier.Broadcast()
	return nil
}

// GetEntry retrieves an entry by ID.
func (s *Store) GetEntry(id string) (entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return entry.Entry{}, storage.ErrNotFound
	}
	return cloneEntry(e), nil
}

// ListEntriesByEvent returns the event's entries, newest first.
func (s *Store) ListEntriesByEvent(eventID string) ([]entry.Entry, error) {
	return s.listEntries(func(e entry.Entry) bool { return e.EventID == eventID }), nil
}

// ListEntriesByEventAndPage returns the event's entries on a page, newest first.
func (s *Store) ListEntriesByEventAndPage(eventID, pageName string) ([]entry.Entry, error) {
	return s.listEntries(func(e entry.Entry) bool {
		return e.EventID == eventID && e.PageName == pageName
	}), nil
}

// ListUnassignedEntries returns entries with no event, newest first.
func (s *Store) ListUnassignedEntries() ([]entry.Entry, error) {
	return s.listEntries(func(e entry.Entry) bool { return e.EventID == "" }), nil
}

// ListAllEntries returns every entry, newest first.
func (s *Store) ListAllEntries() ([]entry.Entry, error) {
	return s.listEntries(func(entry.Entry) bool { return true }), nil
}

// PutEvent inserts or replaces an event by ID.
func (s *Store) PutEvent(ev event.Event) error {
	s.mu.Lock()
	s.events[ev.ID] = cloneEvent(ev)
	s.mu.Unlock()
	s.notifier.Broadcast()
	return nil
}

// DeleteEvent removes an event row by ID. Entries referencing the event are
// not touched; callers cascade explicitly.
func (s *Store) DeleteEvent(id string) error {
	s.mu.Lock()
	_, ok := s.events[id]
	delete(s.events, id)
	s.mu.Unlock()
	if !ok {
		return storage.ErrNotFound
	}
	s.notifier.Broadcast()
	return nil
}

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(id string) (event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	if !ok {
		return event.Event{}, storage.ErrNotFound
	}
	return cloneEvent(ev), nil
}

// ListAllEvents returns every event, newest first.
func (s *Store) ListAllEvents() ([]event.Event, error) {
	s.mu.RLock()
	events := make([]event.Event, 0, len(s.events))
	for _, ev := range s.events {
		events = append(events, cloneEvent(ev))
	}
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// Subscribe returns a change-signal channel tied to ctx.
func (s *Store) Subscribe(ctx context.Context) <-chan struct{} {
	return s.notifier.Subscribe(ctx)
}

// Close releases subscriber channels. The store remains usable for reads.
func (s *Store) Close() error {
	s.notifier.Close()
	return nil
}

func (s *Store) listEntries(match func(entry.Entry) bool) []entry.Entry {
	s.mu.RLock()
	entries := make([]entry.Entry, 0)
	for _, e := range s.entries {
		if match(e) {
			entries = append(entries, cloneEntry(e))
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func cloneEntry(e entry.Entry) entry.Entry {
	e.ImageURIs = append([]string(nil), e.ImageURIs...)
	return e
}

func cloneEvent(ev event.Event) event.Event {
	ev.EntryIDs = append([]string(nil), ev.EntryIDs...)
	return ev
}
