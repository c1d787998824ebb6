package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry represents a single photo-diary entry: a set of image URIs with a
// caption, optionally grouped under a page within an event.
type Entry struct {
	ID        string    `json:"id"`
	ImageURIs []string  `json:"image_uris"`
	Caption   string    `json:"caption"`
	Timestamp time.Time `json:"timestamp"`
	PageName  string    `json:"page_name,omitempty"`
	EventID   string    `json:"event_id,omitempty"`
}

// NewID generates a new UUID for an entry.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks whether an ID is well-formed UUID text.
func ValidateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("invalid entry ID %q: %v", id, err)
	}
	return nil
}

// ValidateCaption checks whether a caption is non-blank.
func ValidateCaption(caption string) error {
	if strings.TrimSpace(caption) == "" {
		return fmt.Errorf("entry caption must not be empty")
	}
	return nil
}

// ValidateImageURIs checks whether at least one image is attached.
func ValidateImageURIs(uris []string) error {
	if len(uris) == 0 {
		return fmt.Errorf("entry must reference at least one image")
	}
	return nil
}

// Unassigned reports whether the entry belongs to no event.
func (e *Entry) Unassigned() bool {
	return e.EventID == ""
}

// Preview returns a truncated single-line preview of the caption.
func (e *Entry) Preview(maxLen int) string {
	caption := strings.ReplaceAll(e.Caption, "\n", " ")
	if len(caption) <= maxLen {
		return caption
	}
	return caption[:maxLen-3] + "..."
}
