package diary

import "github.com/mkarlsen/photodiaryctl/internal/entry"

// DerivePageNames projects the distinct non-empty page names out of an entry
// sequence, each exactly once, in first-seen order. Pages have no stored
// record; this projection is their only existence.
func DerivePageNames(entries []entry.Entry) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, e := range entries {
		if e.PageName == "" || seen[e.PageName] {
			continue
		}
		seen[e.PageName] = true
		names = append(names, e.PageName)
	}
	return names
}
