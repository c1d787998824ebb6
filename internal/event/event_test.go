package event

import "testing"

func TestValidateName(t *testing.T) {
	if err := ValidateName("  "); err == nil {
		t.Error("expected error for blank name")
	}
	if err := ValidateName("Summer Trip"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLinkEntry(t *testing.T) {
	e := Event{ID: NewID(), Name: "Trip"}

	if !e.LinkEntry("a") {
		t.Error("first link should report a change")
	}
	if e.LinkEntry("a") {
		t.Error("duplicate link should not report a change")
	}
	if !e.LinkEntry("b") {
		t.Error("second distinct link should report a change")
	}
	if len(e.EntryIDs) != 2 || e.EntryIDs[0] != "a" || e.EntryIDs[1] != "b" {
		t.Errorf("entry IDs = %v, want [a b]", e.EntryIDs)
	}
}
