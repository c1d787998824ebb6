package storage

import (
	"context"
	"errors"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/event"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("record not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// Storage defines the persistence port for diary entries and events.
//
// All listing methods return snapshots ordered by timestamp descending.
// Subscribe provides the live-query contract: the returned channel receives a
// (coalesced) signal after every committed mutation, and consumers re-run
// whatever listing they depend on to obtain the next snapshot. The channel is
// closed when the context is done or the storage is closed.
type Storage interface {
	// Entry methods
	PutEntry(e entry.Entry) error
	DeleteEntry(id string) error
	DeleteEntriesByEvent(eventID string) error
	DeleteEntriesByEventAndPage(eventID, pageName string) error
	GetEntry(id string) (entry.Entry, error)
	ListEntriesByEvent(eventID string) ([]entry.Entry, error)
	ListEntriesByEventAndPage(eventID, pageName string) ([]entry.Entry, error)
	ListUnassignedEntries() ([]entry.Entry, error)
	ListAllEntries() ([]entry.Entry, error)

	// Event methods
	PutEvent(ev event.Event) error
	DeleteEvent(id string) error
	GetEvent(id string) (event.Event, error)
	ListAllEvents() ([]event.Event, error)

	// Lifecycle methods
	Subscribe(ctx context.Context) <-chan struct{}
	Close() error
}

// EntryLinker is implemented by backends that can persist an entry and append
// its ID to the owning event's membership list in a single transaction.
// Backends without transactional support omit it and callers fall back to the
// two-step write.
type EntryLinker interface {
	PutEntryLinked(e entry.Entry, eventID string) error
}
