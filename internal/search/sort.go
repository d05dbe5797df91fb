package search

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tdelacour/chatindex/internal/contact"
)

// Column identifies a sortable index column.
type Column int

const (
	ByName Column = iota
	ByLastContact
	ByMessageCount
)

// SortContacts stably reorders rows on a single column. Name ordering is
// locale-aware; the tag normally comes from the active interface language.
func SortContacts(rows []*contact.Summary, col Column, ascending bool, tag language.Tag) {
	var less func(a, b *contact.Summary) bool
	switch col {
	case ByName:
		cl := collate.New(tag, collate.IgnoreCase)
		less = func(a, b *contact.Summary) bool {
			return cl.CompareString(a.DisplayName, b.DisplayName) < 0
		}
	case ByLastContact:
		less = func(a, b *contact.Summary) bool {
			return instant(a.LastContact) < instant(b.LastContact)
		}
	case ByMessageCount:
		less = func(a, b *contact.Summary) bool {
			return a.MessageCount < b.MessageCount
		}
	default:
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

// instant maps a timestamp to its sortable numeric value, with the zero
// time pinned to 0.
func instant(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
