package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a named collection of diary entries. EntryIDs is a denormalized
// membership list maintained best-effort on entry creation; the authoritative
// entry set for an event is a query on entries by event ID.
type Event struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EntryIDs      []string  `json:"entry_ids"`
	CoverImageURI string    `json:"cover_image_uri,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewID generates a new UUID for an event.
func NewID() string {
	return uuid.NewString()
}

// ValidateName checks whether an event name is non-blank. Names are not
// required to be unique.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("event name must not be empty")
	}
	return nil
}

// LinkEntry appends an entry ID to the membership list if it is not already
// present, reporting whether the list changed.
func (e *Event) LinkEntry(entryID string) bool {
	for _, id := range e.EntryIDs {
		if id == entryID {
			return false
		}
	}
	e.EntryIDs = append(e.EntryIDs, entryID)
	return true
}
