// Package message validates and normalizes raw extracted message fields
// into records usable by the index.
package message

import (
	"strings"
	"time"

	"github.com/tdelacour/chatindex/internal/textutil"
)

// DisplayFormat is the canonical timestamp format shown in the index.
const DisplayFormat = "2006-01-02 15:04:05"

// layouts is the ordered list of accepted timestamp layouts. Order is
// load-bearing: the first layout to parse wins, with the 12-hour-clock
// layouts deliberately ahead of the 24-hour ones.
var layouts = []string{
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006 3:04 PM",
	"2006-01-02 15:04:05",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
}

// Record is one validated message.
type Record struct {
	Time time.Time // parsed timestamp
	Text string    // lowercased, whitespace-collapsed body
}

// DisplayTime returns the record timestamp in the canonical display format.
func (r Record) DisplayTime() string {
	return r.Time.Format(DisplayFormat)
}

// ParseTime parses raw timestamp text against the fixed layout list,
// first match wins. The boolean is false when no layout matches.
func ParseTime(raw string) (time.Time, bool) {
	s := textutil.NormalizeSpaces(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CleanText normalizes message body text: zero-width characters stripped,
// whitespace collapsed, trimmed, lowercased.
func CleanText(raw string) string {
	return strings.ToLower(textutil.NormalizeSpaces(raw))
}

// Normalize aligns the timestamp and bubble sequences positionally and
// emits a record for every index where the timestamp parses and the
// normalized text is non-empty. Records keep their document order; a
// failure at one index never affects its neighbors.
func Normalize(timestamps, bubbles []string) []Record {
	n := min(len(timestamps), len(bubbles))
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		t, ok := ParseTime(timestamps[i])
		if !ok {
			continue
		}
		text := CleanText(bubbles[i])
		if text == "" {
			continue
		}
		records = append(records, Record{Time: t, Text: text})
	}
	return records
}
