// Package index renders the self-contained contacts index page.
//
// The page embeds everything it needs: styles, the client-side search
// runtime, the localization tables, and one JSON-serialized message array
// per contact row. It works from a file:// URL with no server.
package index

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tdelacour/chatindex/internal/contact"
	"github.com/tdelacour/chatindex/internal/i18n"
	"github.com/tdelacour/chatindex/internal/message"
)

//go:embed assets
var assets embed.FS

var (
	pageTmpl = template.Must(template.ParseFS(assets, "assets/page.tmpl.html"))
	searchJS = mustAsset("assets/search.js")
)

func mustAsset(name string) string {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Row is the template payload for one contact.
type Row struct {
	File         string // source document, linked from the name cell
	Name         string
	NameLower    string
	DateDisplay  string
	Timestamp    string // unix seconds of last contact, for date sorting
	MessageCount int
	MessagesJSON string // serialized {ts,date,text} array, decoded by the runtime at load
	AllText      string
}

type pageData struct {
	Lang         string
	Texts        i18n.Texts
	Localization template.JS // all string tables, for runtime language switching
	Script       template.JS
	Rows         []Row
}

// buildRow serializes one contact summary for the template.
func buildRow(c *contact.Summary) (Row, error) {
	type serialMessage struct {
		TS   int64  `json:"ts"`
		Date string `json:"date"`
		Text string `json:"text"`
	}
	serial := make([]serialMessage, len(c.Messages))
	for i, m := range c.Messages {
		serial[i] = serialMessage{TS: m.Time.Unix(), Date: m.DisplayTime(), Text: m.Text}
	}
	raw, err := json.Marshal(serial)
	if err != nil {
		return Row{}, fmt.Errorf("serialize messages for %s: %w", c.SourceFile, err)
	}
	return Row{
		File:         c.SourceFile,
		Name:         c.DisplayName,
		NameLower:    strings.ToLower(c.DisplayName),
		DateDisplay:  c.LastContact.Format(message.DisplayFormat),
		Timestamp:    strconv.FormatInt(c.LastContact.Unix(), 10),
		MessageCount: c.MessageCount,
		MessagesJSON: string(raw),
		AllText:      c.AllText,
	}, nil
}

// Render writes the index page for the given contacts, which are expected
// to already be in display order.
func Render(w io.Writer, contacts []*contact.Summary, lang string) error {
	rows := make([]Row, len(contacts))
	for i, c := range contacts {
		r, err := buildRow(c)
		if err != nil {
			return err
		}
		rows[i] = r
	}

	loc, err := json.Marshal(i18n.All())
	if err != nil {
		return fmt.Errorf("serialize localization tables: %w", err)
	}

	data := pageData{
		Lang:         lang,
		Texts:        i18n.Lookup(lang),
		Localization: template.JS(loc),
		Script:       template.JS(searchJS),
		Rows:         rows,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render index page: %w", err)
	}
	return nil
}

// WriteFile renders the page into memory first, so a render failure never
// leaves a partial artifact on disk.
func WriteFile(path string, contacts []*contact.Summary, lang string) error {
	var buf bytes.Buffer
	if err := Render(&buf, contacts, lang); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
