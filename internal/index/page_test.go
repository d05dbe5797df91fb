package index

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tdelacour/chatindex/internal/contact"
	"github.com/tdelacour/chatindex/internal/message"
)

func sampleContacts() []*contact.Summary {
	return []*contact.Summary{
		{
			SourceFile:   "alice.html",
			DisplayName:  "Alice",
			LastContact:  time.Date(2024, time.January, 2, 11, 0, 0, 0, time.UTC),
			MessageCount: 2,
			Messages: []message.Record{
				{Time: time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), Text: "hello there"},
				{Time: time.Date(2024, time.January, 2, 11, 0, 0, 0, time.UTC), Text: "how are you"},
			},
			AllText: "hello there how are you",
		},
		{
			SourceFile:   "bob & co.html",
			DisplayName:  `Bob <"mad"> Dog`,
			LastContact:  time.Date(2023, time.December, 25, 8, 30, 0, 0, time.UTC),
			MessageCount: 1,
			Messages: []message.Record{
				{Time: time.Date(2023, time.December, 25, 8, 30, 0, 0, time.UTC), Text: "merry <xmas>"},
			},
			AllText: "merry <xmas>",
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleContacts(), "en"); err != nil {
		t.Fatal(err)
	}
	page := buf.String()

	for _, want := range []string{
		`<html lang="en">`,
		"<title>Contacts Index</title>",
		"Alice",
		`data-contact-search="alice"`,
		"2024-01-02 11:00:00",
		"const ALL_LOCALIZATION_DATA",
		"function filterTable()",
		"function getLevenshteinDistance",
		"SEARCH_DELAY = 300",
		`id="contactsTable"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}

	// Markup in contact names and message text must be escaped.
	if strings.Contains(page, `<"mad">`) {
		t.Error("unescaped contact name in page")
	}
	if strings.Contains(page, "<xmas>") {
		t.Error("unescaped message text in page")
	}
}

func TestRenderRowPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleContacts(), "fr"); err != nil {
		t.Fatal(err)
	}
	page := buf.String()

	// The serialized array survives attribute escaping round-trip: the
	// escaped JSON keys must be present.
	for _, want := range []string{
		"data-raw-messages=",
		"&#34;ts&#34;",
		"&#34;date&#34;",
		"&#34;text&#34;",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestBuildRow(t *testing.T) {
	c := sampleContacts()[0]
	row, err := buildRow(c)
	if err != nil {
		t.Fatal(err)
	}
	if row.NameLower != "alice" {
		t.Errorf("NameLower = %q, want %q", row.NameLower, "alice")
	}
	if row.Timestamp != "1704193200" {
		t.Errorf("Timestamp = %q, want %q", row.Timestamp, "1704193200")
	}
	if !strings.Contains(row.MessagesJSON, `"text":"hello there"`) {
		t.Errorf("MessagesJSON = %q", row.MessagesJSON)
	}
	if !strings.Contains(row.MessagesJSON, `"date":"2024-01-01 10:00:00"`) {
		t.Errorf("MessagesJSON = %q", row.MessagesJSON)
	}
}

func TestBuildRowNoMessages(t *testing.T) {
	c := &contact.Summary{
		SourceFile:   "empty.html",
		DisplayName:  "Empty",
		LastContact:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		MessageCount: 3,
	}
	row, err := buildRow(c)
	if err != nil {
		t.Fatal(err)
	}
	if row.MessagesJSON != "[]" {
		t.Errorf("MessagesJSON = %q, want empty array", row.MessagesJSON)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := WriteFile(path, sampleContacts(), "en"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Contacts Index") {
		t.Error("written file missing page content")
	}
}
