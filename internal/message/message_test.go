package message

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{
			name: "12 hour with seconds",
			raw:  "Jan 1, 2024 10:00:00 AM",
			want: time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "12 hour pm",
			raw:  "Feb 3, 2024 5:30:01 PM",
			want: time.Date(2024, time.February, 3, 17, 30, 1, 0, time.UTC),
			ok:   true,
		},
		{
			name: "12 hour without seconds",
			raw:  "Mar 15, 2023 11:45 PM",
			want: time.Date(2023, time.March, 15, 23, 45, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso style",
			raw:  "2024-01-02 13:00:00",
			want: time.Date(2024, time.January, 2, 13, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "day first with seconds",
			raw:  "2 Jan 2024 13:00:00",
			want: time.Date(2024, time.January, 2, 13, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "day first without seconds",
			raw:  "2 Jan 2024 13:00",
			want: time.Date(2024, time.January, 2, 13, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "surrounding whitespace tolerated",
			raw:  "  2024-01-02   13:00:00 ",
			want: time.Date(2024, time.January, 2, 13, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{name: "garbage", raw: "yesterday at noon", ok: false},
		{name: "empty", raw: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases", "Hello There", "hello there"},
		{"collapses whitespace", "a \t b\n\nc", "a b c"},
		{"strips zero width", "he\u200Bllo\uFEFF", "hello"},
		{"empty after normalization", " \u200B ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.raw); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeAllValid(t *testing.T) {
	// k aligned pairs, all parseable and non-empty, must yield exactly k
	// records in original order.
	timestamps := []string{
		"Jan 1, 2024 10:00:00 AM",
		"Jan 1, 2024 10:05:00 AM",
		"Jan 1, 2024 10:10:00 AM",
	}
	bubbles := []string{"First", "Second", "Third"}

	got := Normalize(timestamps, bubbles)
	want := []Record{
		{Time: time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), Text: "first"},
		{Time: time.Date(2024, time.January, 1, 10, 5, 0, 0, time.UTC), Text: "second"},
		{Time: time.Date(2024, time.January, 1, 10, 10, 0, 0, time.UTC), Text: "third"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeSkipsBadRecords(t *testing.T) {
	timestamps := []string{
		"Jan 1, 2024 10:00:00 AM",
		"not a timestamp",
		"Jan 1, 2024 10:10:00 AM",
		"Jan 1, 2024 10:15:00 AM",
	}
	bubbles := []string{"first", "second", "  \u200B ", "fourth"}

	got := Normalize(timestamps, bubbles)
	want := []Record{
		{Time: time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), Text: "first"},
		{Time: time.Date(2024, time.January, 1, 10, 15, 0, 0, time.UTC), Text: "fourth"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeTruncatesToShorter(t *testing.T) {
	timestamps := []string{
		"Jan 1, 2024 10:00:00 AM",
		"Jan 1, 2024 10:05:00 AM",
		"Jan 1, 2024 10:10:00 AM",
	}
	bubbles := []string{"only one"}

	got := Normalize(timestamps, bubbles)
	if len(got) != 1 {
		t.Fatalf("Normalize() returned %d records, want 1", len(got))
	}
	if got[0].Text != "only one" {
		t.Errorf("Text = %q, want %q", got[0].Text, "only one")
	}

	if got := Normalize(nil, bubbles); len(got) != 0 {
		t.Errorf("Normalize(nil, bubbles) returned %d records, want 0", len(got))
	}
}

func TestNormalizeKeepsDocumentOrder(t *testing.T) {
	// Records stay in order of appearance even when not monotonic in time.
	timestamps := []string{
		"Jan 2, 2024 10:00:00 AM",
		"Jan 1, 2024 10:00:00 AM",
	}
	bubbles := []string{"later", "earlier"}

	got := Normalize(timestamps, bubbles)
	if len(got) != 2 || got[0].Text != "later" || got[1].Text != "earlier" {
		t.Errorf("Normalize() reordered records: %+v", got)
	}
}

func TestDisplayTime(t *testing.T) {
	r := Record{Time: time.Date(2024, time.January, 2, 11, 0, 0, 0, time.UTC)}
	if got := r.DisplayTime(); got != "2024-01-02 11:00:00" {
		t.Errorf("DisplayTime() = %q, want %q", got, "2024-01-02 11:00:00")
	}
}
