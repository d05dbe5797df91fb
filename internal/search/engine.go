// Package search implements the in-memory contact and message search
// engine behind the index page and the serve-mode API.
package search

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tdelacour/chatindex/internal/contact"
	"github.com/tdelacour/chatindex/internal/message"
)

// snippetContext is the number of runes kept on each side of a literal
// match inside a message excerpt.
const snippetContext = 50

// fuzzyPreviewLen is the number of leading runes shown when a message
// matched only through the fuzzy fallback.
const fuzzyPreviewLen = 100

// Query is the full filter state for one evaluation pass. It is rebuilt
// from the raw control values on every pass and never retained across
// passes.
type Query struct {
	Text         string     // lowercased, trimmed filter text
	ScopeName    bool       // match against contact names
	ScopeMessage bool       // match against message bodies
	Fuzzy        bool       // enable the edit-distance fallback
	Start        *time.Time // inclusive lower bound on last contact
	End          *time.Time // start of the end day; the bound excludes the following day
}

// NewQuery builds a Query, normalizing the filter text.
func NewQuery(text string, scopeName, scopeMessage, fuzzy bool, start, end *time.Time) Query {
	return Query{
		Text:         strings.ToLower(strings.TrimSpace(text)),
		ScopeName:    scopeName,
		ScopeMessage: scopeMessage,
		Fuzzy:        fuzzy,
		Start:        start,
		End:          end,
	}
}

// Active reports whether the query constrains visibility at all.
func (q Query) Active() bool {
	return q.Text != "" || q.Start != nil || q.End != nil
}

// Snippet is one highlighted message excerpt.
type Snippet struct {
	HTML string    // preview markup: display timestamp plus excerpt
	Time time.Time // message timestamp, for ordering
}

// Result is the transient view state for one contact under one query. The
// engine only ever reads the contact summaries; all per-query state lives
// here and is overwritten by the next pass.
type Result struct {
	Visible  bool
	NameHTML string    // display name with filter occurrences wrapped in <strong>
	Snippets []Snippet // matching messages, most recent first
}

// Engine evaluates queries against immutable contact summaries.
type Engine struct {
	fuzzyLabel string // localized marker appended to fuzzy-only previews
}

// NewEngine returns an engine using the given localized fuzzy-match marker.
func NewEngine(fuzzyLabel string) *Engine {
	return &Engine{fuzzyLabel: fuzzyLabel}
}

// Evaluate computes the view state for one contact. An inactive query takes
// the fast path: everything visible, nothing highlighted, no message scan.
// A contact failing the date gate is hidden without scanning its messages.
func (e *Engine) Evaluate(q Query, c *contact.Summary) Result {
	plainName := html.EscapeString(c.DisplayName)
	if !q.Active() {
		return Result{Visible: true, NameHTML: plainName}
	}
	if !dateMatch(q, c.LastContact) {
		return Result{Visible: false, NameHTML: plainName}
	}

	res := Result{NameHTML: plainName}
	textMatch := false

	if q.Text != "" && q.ScopeName {
		lowered := strings.ToLower(c.DisplayName)
		if strings.Contains(lowered, q.Text) {
			res.NameHTML = highlight(c.DisplayName, q.Text)
			textMatch = true
		} else if q.Fuzzy && FuzzyMatch(lowered, q.Text) {
			// No literal span exists, so the name stays
			// unhighlighted; the match still counts for visibility.
			textMatch = true
		}
	}

	if q.Text != "" && q.ScopeMessage {
		for _, m := range c.Messages {
			snip, ok := e.messageSnippet(q, m)
			if !ok {
				continue
			}
			textMatch = true
			res.Snippets = append(res.Snippets, snip)
		}
		sort.SliceStable(res.Snippets, func(i, j int) bool {
			return res.Snippets[i].Time.After(res.Snippets[j].Time)
		})
	}

	res.Visible = q.Text == "" || textMatch
	return res
}

// Filter evaluates the query against every contact, preserving order.
func (e *Engine) Filter(q Query, contacts []*contact.Summary) []Result {
	out := make([]Result, len(contacts))
	for i, c := range contacts {
		out[i] = e.Evaluate(q, c)
	}
	return out
}

// dateMatch applies the half-open date gate: start is inclusive, the end
// bound excludes everything from the day after the end date onwards.
func dateMatch(q Query, last time.Time) bool {
	if q.Start != nil && last.Before(*q.Start) {
		return false
	}
	if q.End != nil && !last.Before(q.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// messageSnippet builds the highlighted excerpt for one message, or returns
// ok=false when the message does not match the filter.
func (e *Engine) messageSnippet(q Query, m message.Record) (Snippet, bool) {
	idx := strings.Index(m.Text, q.Text)
	if idx < 0 {
		if !q.Fuzzy || !FuzzyMatch(m.Text, q.Text) {
			return Snippet{}, false
		}
		// Fuzzy-only match: no literal span to window around, show
		// the head of the message with the localized marker.
		preview := firstRunes(m.Text, fuzzyPreviewLen) + "..."
		return Snippet{
			HTML: fmt.Sprintf(`<span class="preview-date">%s%s</span>%s`,
				m.DisplayTime(), html.EscapeString(e.fuzzyLabel), html.EscapeString(preview)),
			Time: m.Time,
		}, true
	}

	textRunes := []rune(m.Text)
	matchPos := utf8.RuneCountInString(m.Text[:idx])
	filterLen := utf8.RuneCountInString(q.Text)

	start := matchPos - snippetContext
	if start < 0 {
		start = 0
	}
	end := matchPos + filterLen + snippetContext
	if end > len(textRunes) {
		end = len(textRunes)
	}

	excerpt := highlight(string(textRunes[start:end]), q.Text)
	if start > 0 {
		excerpt = "... " + excerpt
	}
	if end < len(textRunes) {
		excerpt = excerpt + " ..."
	}
	return Snippet{
		HTML: fmt.Sprintf(`<span class="preview-date">%s</span>%s`, m.DisplayTime(), excerpt),
		Time: m.Time,
	}, true
}

// firstRunes returns the first n runes of s.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// highlight HTML-escapes s with every case-insensitive occurrence of filter
// wrapped in <strong> tags. Matching is done rune by rune so that case
// mappings which change UTF-8 byte length cannot skew the highlighted spans.
func highlight(s, filter string) string {
	needle := []rune(filter)
	for i, r := range needle {
		needle[i] = unicode.ToLower(r)
	}
	if len(needle) == 0 {
		return html.EscapeString(s)
	}
	runes := []rune(s)
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}

	var b strings.Builder
	last := 0
	for i := 0; i+len(needle) <= len(lowered); {
		if !runesEqual(lowered[i:i+len(needle)], needle) {
			i++
			continue
		}
		b.WriteString(html.EscapeString(string(runes[last:i])))
		b.WriteString("<strong>")
		b.WriteString(html.EscapeString(string(runes[i : i+len(needle)])))
		b.WriteString("</strong>")
		i += len(needle)
		last = i
	}
	b.WriteString(html.EscapeString(string(runes[last:])))
	return b.String()
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
