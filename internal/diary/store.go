// Package diary owns the consistency rules between entries, their derived
// pages, and their owning events, on top of the storage port.
package diary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/event"
	"github.com/mkarlsen/photodiaryctl/internal/storage"
)

// SaveStatus classifies the outcome of a SaveEntry call.
type SaveStatus int

const (
	// StatusSaved means the entry was persisted.
	StatusSaved SaveStatus = iota
	// StatusNothingToSave means validation refused the save; nothing was written.
	StatusNothingToSave
)

// SaveRequest carries the caller-supplied fields for a save. Empty PageName
// and EventID on an update fall back to the stored entry's values.
type SaveRequest struct {
	ImageURIs  []string
	Caption    string
	PageName   string
	EventID    string
	ExistingID string
}

// SaveResult reports the outcome of a save with a human-readable message.
type SaveResult struct {
	Status  SaveStatus
	Message string
	Entry   entry.Entry
}

// Store exposes the diary operations UI-equivalent callers use. It performs
// no caching; every read goes to the storage port.
type Store struct {
	st     storage.Storage
	atomic bool
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithAtomicLinking makes SaveEntry use the backend's single-transaction
// entry+event write when the backend supports it. The default is the
// documented two-step write: entry first, then a best-effort event update.
func WithAtomicLinking() Option {
	return func(s *Store) { s.atomic = true }
}

// WithClock overrides the save-timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a diary store over the given storage port.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{st: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEvent persists a new named event with an empty membership list and an
// optional cover image.
func (s *Store) CreateEvent(name, coverImageURI string) (event.Event, error) {
	if err := event.ValidateName(name); err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	ev := event.Event{
		ID:            event.NewID(),
		Name:          name,
		EntryIDs:      []string{},
		CoverImageURI: coverImageURI,
		Timestamp:     s.now().UTC(),
	}
	if err := s.st.PutEvent(ev); err != nil {
		return event.Event{}, err
	}
	return ev, nil
}

// RenameEvent updates an event's display name.
func (s *Store) RenameEvent(id, name string) (event.Event, error) {
	if err := event.ValidateName(name); err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	ev, err := s.st.GetEvent(id)
	if err != nil {
		return event.Event{}, err
	}
	ev.Name = name
	if err := s.st.PutEvent(ev); err != nil {
		return event.Event{}, err
	}
	return ev, nil
}

// SetEventCover updates an event's cover image URI.
func (s *Store) SetEventCover(id, coverImageURI string) (event.Event, error) {
	ev, err := s.st.GetEvent(id)
	if err != nil {
		return event.Event{}, err
	}
	ev.CoverImageURI = coverImageURI
	if err := s.st.PutEvent(ev); err != nil {
		return event.Event{}, err
	}
	return ev, nil
}

// DeleteEvent cascade-deletes an event: all entries whose event ID matches
// are removed first, then the event row. The order guarantees no final state
// where entries reference a deleted event.
func (s *Store) DeleteEvent(id string) error {
	if err := s.st.DeleteEntriesByEvent(id); err != nil {
		return err
	}
	return s.st.DeleteEvent(id)
}

// DeleteEntry removes a single entry. The owning event's membership list is
// left as-is; it is a hint, not the source of truth.
func (s *Store) DeleteEntry(id string) error {
	return s.st.DeleteEntry(id)
}

// DeletePage removes every entry in the event carrying the page name. There
// is no page row to delete; saving a new entry with the same name later
// recreates the page.
func (s *Store) DeletePage(eventID, pageName string) error {
	return s.st.DeleteEntriesByEventAndPage(eventID, pageName)
}

// SaveEntry validates and persists an entry.
//
// A new entry (no ExistingID) gets a fresh ID, and when an event is given its
// ID is appended to that event's membership list afterwards, best effort: a
// vanished event is skipped, and a failed membership write leaves the entry
// persisted but the event under-linked. An update keeps the entry's ID,
// refreshes the timestamp, and falls back to the stored page/event when the
// request omits them; membership is only maintained on first creation.
func (s *Store) SaveEntry(req SaveRequest) (SaveResult, error) {
	if entry.ValidateImageURIs(req.ImageURIs) != nil || entry.ValidateCaption(req.Caption) != nil {
		return SaveResult{
			Status:  StatusNothingToSave,
			Message: "Nothing to save: an entry needs at least one image and a caption.",
		}, nil
	}

	if req.ExistingID == "" {
		if strings.TrimSpace(req.PageName) == "" {
			return SaveResult{
				Status:  StatusNothingToSave,
				Message: "Nothing to save: a page name is required.",
			}, nil
		}
		return s.createEntry(req)
	}
	return s.updateEntry(req)
}

func (s *Store) createEntry(req SaveRequest) (SaveResult, error) {
	e := entry.Entry{
		ID:        entry.NewID(),
		ImageURIs: req.ImageURIs,
		Caption:   req.Caption,
		Timestamp: s.now().UTC(),
		PageName:  req.PageName,
		EventID:   req.EventID,
	}

	if req.EventID != "" && s.atomic {
		if linker, ok := s.st.(storage.EntryLinker); ok {
			if err := linker.PutEntryLinked(e, req.EventID); err != nil {
				return SaveResult{}, err
			}
			return saved(e), nil
		}
	}

	if err := s.st.PutEntry(e); err != nil {
		return SaveResult{}, err
	}

	if req.EventID != "" {
		ev, err := s.st.GetEvent(req.EventID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Event vanished; the entry stays, unlinked.
		case err != nil:
			return SaveResult{}, err
		default:
			if ev.LinkEntry(e.ID) {
				if err := s.st.PutEvent(ev); err != nil {
					// Entry write already committed; the event is under-linked,
					// which readers tolerate by querying entries directly.
					return SaveResult{}, err
				}
			}
		}
	}
	return saved(e), nil
}

func (s *Store) updateEntry(req SaveRequest) (SaveResult, error) {
	existing, err := s.st.GetEntry(req.ExistingID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return SaveResult{}, err
	}
	// A vanished row degrades to absent prior fields.

	pageName := req.PageName
	if strings.TrimSpace(pageName) == "" {
		pageName = existing.PageName
	}
	eventID := req.EventID
	if eventID == "" {
		eventID = existing.EventID
	}

	e := entry.Entry{
		ID:        req.ExistingID,
		ImageURIs: req.ImageURIs,
		Caption:   req.Caption,
		Timestamp: s.now().UTC(),
		PageName:  pageName,
		EventID:   eventID,
	}
	if err := s.st.PutEntry(e); err != nil {
		return SaveResult{}, err
	}
	return saved(e), nil
}

func saved(e entry.Entry) SaveResult {
	return SaveResult{Status: StatusSaved, Message: "Saved to diary.", Entry: e}
}

// Read-throughs. No added logic; the storage port's ordering contract holds.

func (s *Store) Entry(id string) (entry.Entry, error) { return s.st.GetEntry(id) }

func (s *Store) Event(id string) (event.Event, error) { return s.st.GetEvent(id) }

func (s *Store) EntriesForEvent(eventID string) ([]entry.Entry, error) {
	return s.st.ListEntriesByEvent(eventID)
}

func (s *Store) EntriesForEventAndPage(eventID, pageName string) ([]entry.Entry, error) {
	return s.st.ListEntriesByEventAndPage(eventID, pageName)
}

func (s *Store) UnassignedEntries() ([]entry.Entry, error) {
	return s.st.ListUnassignedEntries()
}

func (s *Store) AllEntries() ([]entry.Entry, error) { return s.st.ListAllEntries() }

func (s *Store) AllEvents() ([]event.Event, error) { return s.st.ListAllEvents() }

// PagesForEvent returns the derived page names for an event, first-seen order
// over the newest-first entry listing.
func (s *Store) PagesForEvent(eventID string) ([]string, error) {
	entries, err := s.st.ListEntriesByEvent(eventID)
	if err != nil {
		return nil, err
	}
	return DerivePageNames(entries), nil
}
