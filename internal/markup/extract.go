// Package markup extracts message fields from chat export HTML documents.
//
// Export files mark their fields structurally: the message timestamp is a
// link inside a span with class "timestamp", the sender name sits in a span
// with class "sender", and the message body in a span with class "bubble".
// Everything outside those containers is ignored.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Document holds the three field sequences captured from one conversation
// file, in document order. Alignment between the sequences is positional,
// not structural; callers must tolerate length mismatches by truncating to
// the shorter sequence.
type Document struct {
	Timestamps []string // text inside <a> within class="timestamp" spans
	Senders    []string // text within class="sender" spans
	Bubbles    []string // text within class="bubble" spans
}

// Extract scans one conversation document and captures field text in
// document order. Each capture is whitespace-trimmed and empty captures are
// dropped, so sequence lengths can differ from raw element counts.
// Malformed or non-HTML input yields empty sequences rather than an error.
func Extract(content string) *Document {
	doc := &Document{}
	z := html.NewTokenizer(strings.NewReader(content))

	var inTimestamp, inAnchor, inSender, inBubble bool
	for {
		switch z.Next() {
		case html.ErrorToken:
			// EOF or unrecoverable garbage; keep whatever was
			// captured so far.
			return doc
		case html.StartTagToken:
			tag, class := tagAndClass(z)
			switch tag {
			case "span":
				switch class {
				case "timestamp":
					inTimestamp = true
				case "sender":
					inSender = true
				case "bubble":
					inBubble = true
				}
			case "a":
				if inTimestamp {
					inAnchor = true
				}
			}
		case html.EndTagToken:
			tag, _ := tagAndClass(z)
			switch tag {
			case "a":
				inAnchor = false
			case "span":
				inTimestamp = false
				inSender = false
				inBubble = false
			}
		case html.TextToken:
			text := strings.TrimSpace(string(z.Text()))
			if text == "" {
				continue
			}
			if inTimestamp && inAnchor {
				doc.Timestamps = append(doc.Timestamps, text)
			}
			if inSender {
				doc.Senders = append(doc.Senders, text)
			}
			if inBubble {
				doc.Bubbles = append(doc.Bubbles, text)
			}
		}
	}
}

// tagAndClass returns the lowercased tag name of the current token and the
// value of its class attribute, if any.
func tagAndClass(z *html.Tokenizer) (string, string) {
	name, hasAttr := z.TagName()
	tag := string(name)
	if !hasAttr {
		return tag, ""
	}
	var class string
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			class = string(val)
		}
		if !more {
			break
		}
	}
	return tag, class
}
