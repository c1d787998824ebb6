package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/event"
)

// DeleteResult is the JSON shape for delete confirmations.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// PageDeleteResult is the JSON shape for page deletions.
type PageDeleteResult struct {
	EventID  string `json:"event_id"`
	PageName string `json:"page_name"`
	Deleted  bool   `json:"deleted"`
}

// CaptionResult is the JSON shape for generated captions.
type CaptionResult struct {
	Caption string `json:"caption"`
}

// FormatJSON writes any value as indented JSON.
func FormatJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// FormatEntrySaved formats a save confirmation message.
func FormatEntrySaved(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "Saved entry %s (%s)\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"))
}

// FormatEntryDeleted formats an entry deletion message.
func FormatEntryDeleted(w io.Writer, id string) {
	fmt.Fprintf(w, "Deleted entry %s.\n", id)
}

// FormatEventCreated formats an event creation message.
func FormatEventCreated(w io.Writer, ev event.Event) {
	fmt.Fprintf(w, "Created event %q (%s)\n", ev.Name, ev.ID)
}

// FormatEventDeleted formats an event deletion message.
func FormatEventDeleted(w io.Writer, id string) {
	fmt.Fprintf(w, "Deleted event %s and all its entries.\n", id)
}

// FormatPageDeleted formats a page deletion message.
func FormatPageDeleted(w io.Writer, eventID, pageName string) {
	fmt.Fprintf(w, "Deleted page %q from event %s.\n", pageName, eventID)
}

// FormatEntryFull formats a full entry display with metadata header.
func FormatEntryFull(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "Entry: %s\n", e.ID)
	fmt.Fprintf(w, "Saved: %s\n", e.Timestamp.Local().Format("2006-01-02 15:04"))
	if e.PageName != "" {
		fmt.Fprintf(w, "Page: %s\n", e.PageName)
	}
	if e.EventID != "" {
		fmt.Fprintf(w, "Event: %s\n", e.EventID)
	}
	fmt.Fprintf(w, "Images: %s\n", strings.Join(e.ImageURIs, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, e.Caption)
}

// FormatEventFull formats a full event display.
func FormatEventFull(w io.Writer, ev event.Event) {
	fmt.Fprintf(w, "Event: %s\n", ev.Name)
	fmt.Fprintf(w, "ID: %s\n", ev.ID)
	fmt.Fprintf(w, "Created: %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04"))
	if ev.CoverImageURI != "" {
		fmt.Fprintf(w, "Cover: %s\n", ev.CoverImageURI)
	}
	fmt.Fprintf(w, "Linked entries: %d\n", len(ev.EntryIDs))
}

// FormatEntryList formats a list of entries as a table.
func FormatEntryList(w io.Writer, entries []entry.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	for _, e := range entries {
		page := e.PageName
		if page == "" {
			page = "-"
		}
		fmt.Fprintf(w, "%s  %s  %-12s  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			page,
			e.Preview(50),
		)
	}
}

// FormatEventList formats a list of events.
func FormatEventList(w io.Writer, events []event.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(w, "%s  %s  %s (%d entries)\n",
			ev.ID,
			ev.Timestamp.Local().Format("2006-01-02 15:04"),
			ev.Name,
			len(ev.EntryIDs),
		)
	}
}

// FormatPageList formats the derived page names of an event.
func FormatPageList(w io.Writer, pages []string) {
	if len(pages) == 0 {
		fmt.Fprintln(w, "No pages found.")
		return
	}
	for _, name := range pages {
		fmt.Fprintln(w, name)
	}
}
