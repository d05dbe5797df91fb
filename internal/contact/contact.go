// Package contact aggregates conversation documents into display-ready
// summary rows.
package contact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tdelacour/chatindex/internal/markup"
	"github.com/tdelacour/chatindex/internal/message"
	"github.com/tdelacour/chatindex/internal/textutil"
)

// ownMarker is the sender name chat clients use for the exporting user.
const ownMarker = "me"

// Summary is the aggregate for one conversation. It is built once per
// generation run and never mutated afterwards.
type Summary struct {
	SourceFile   string           // base name of the source document
	DisplayName  string           // resolved contact name
	LastContact  time.Time        // newest parseable timestamp in the document
	MessageCount int              // count of all parseable timestamps
	Messages     []message.Record // aligned records with valid text; may be shorter than MessageCount
	AllText      string           // space-joined record text, for whole-contact matching
}

// Build aggregates one document's extracted sequences into a Summary. The
// boolean is false when the document has no parseable timestamp at all and
// therefore contributes nothing to the index.
//
// MessageCount and LastContact are derived from every parseable timestamp,
// independent of whether a message body survived normalization, so
// MessageCount can exceed len(Messages).
func Build(sourceFile string, doc *markup.Document) (*Summary, bool) {
	var last time.Time
	count := 0
	for _, raw := range doc.Timestamps {
		t, ok := message.ParseTime(raw)
		if !ok {
			continue
		}
		count++
		if t.After(last) {
			last = t
		}
	}
	if count == 0 {
		return nil, false
	}

	records := message.Normalize(doc.Timestamps, doc.Bubbles)
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	stem := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
	return &Summary{
		SourceFile:   sourceFile,
		DisplayName:  resolveName(stem, doc.Senders),
		LastContact:  last,
		MessageCount: count,
		Messages:     records,
		AllText:      strings.Join(texts, " "),
	}, true
}

// resolveName picks the first sender that is not the exporting user's own
// marker, falling back to the file stem.
func resolveName(stem string, senders []string) string {
	for _, s := range senders {
		if !strings.EqualFold(s, ownMarker) {
			return s
		}
	}
	return stem
}

// ScanFile reads and aggregates a single conversation document. Unreadable
// or unusable files return ok=false; neither is fatal to a directory scan.
func ScanFile(path string) (*Summary, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	doc := markup.Extract(textutil.EnsureUTF8(string(data)))
	return Build(filepath.Base(path), doc)
}

// ScanDir aggregates every .html document in dir, newest contact first.
// Unusable files are skipped silently apart from a debug log.
func ScanDir(dir string, log *slog.Logger) ([]*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	var out []*Summary
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		s, ok := ScanFile(filepath.Join(dir, e.Name()))
		if !ok {
			log.Debug("skipping unusable conversation", "file", e.Name())
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastContact.After(out[j].LastContact)
	})
	return out, nil
}
