// Package server serves the generated index, the source conversation
// documents, and a search API over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/tdelacour/chatindex/internal/contact"
	"github.com/tdelacour/chatindex/internal/i18n"
	"github.com/tdelacour/chatindex/internal/index"
	"github.com/tdelacour/chatindex/internal/message"
	"github.com/tdelacour/chatindex/internal/search"
)

// Server holds the immutable scan results and answers search queries
// against them. The index page is rendered once at construction.
type Server struct {
	dir      string
	contacts []*contact.Summary
	engine   *search.Engine
	tag      language.Tag // collation tag for name sorting
	page     []byte
	logger   *slog.Logger
	router   chi.Router
}

// New builds a server over one scanned folder.
func New(dir, lang string, contacts []*contact.Summary, logger *slog.Logger) (*Server, error) {
	var buf bytes.Buffer
	if err := index.Render(&buf, contacts, lang); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}

	s := &Server{
		dir:      dir,
		contacts: contacts,
		engine:   search.NewEngine(i18n.Lookup(lang).SearchFuzzy),
		tag:      i18n.Tag(lang),
		page:     buf.Bytes(),
		logger:   logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/", s.handleIndex)
	// The generated page links conversations by bare file name, so the
	// sources are reachable both at the root and under /conversations/.
	r.Get("/{file}", s.handleConversation)
	r.Get("/conversations/{file}", s.handleConversation)
	r.Get("/api/search", s.handleSearch)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	// Only base names are ever linked; anything else is a traversal
	// attempt.
	if file == "" || file != filepath.Base(file) || file[0] == '.' {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.dir, file))
}

// searchHit is one visible contact in a search response.
type searchHit struct {
	Name         string       `json:"name"`
	NameHTML     string       `json:"name_html"`
	File         string       `json:"file"`
	LastContact  string       `json:"last_contact"`
	MessageCount int          `json:"message_count"`
	Snippets     []hitSnippet `json:"snippets,omitempty"`
}

type hitSnippet struct {
	HTML string `json:"html"`
	TS   int64  `json:"ts"`
}

// handleSearch runs the engine over the cached contacts.
//
// Parameters: q (filter text), name/message/fuzzy (booleans, default true),
// start/end (YYYY-MM-DD date bounds, end day inclusive), sort
// (name|date|count) and order (asc|desc).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	start, ok := parseDateParam(params.Get("start"))
	if !ok {
		http.Error(w, "invalid start date", http.StatusBadRequest)
		return
	}
	end, ok := parseDateParam(params.Get("end"))
	if !ok {
		http.Error(w, "invalid end date", http.StatusBadRequest)
		return
	}

	rows := s.contacts
	if v := params.Get("sort"); v != "" {
		col, ok := sortParam(v)
		if !ok {
			http.Error(w, "invalid sort column", http.StatusBadRequest)
			return
		}
		rows = make([]*contact.Summary, len(s.contacts))
		copy(rows, s.contacts)
		search.SortContacts(rows, col, params.Get("order") != "desc", s.tag)
	}

	q := search.NewQuery(
		params.Get("q"),
		boolParam(params.Get("name"), true),
		boolParam(params.Get("message"), true),
		boolParam(params.Get("fuzzy"), true),
		start, end,
	)

	results := s.engine.Filter(q, rows)
	hits := make([]searchHit, 0, len(results))
	for i, res := range results {
		if !res.Visible {
			continue
		}
		c := rows[i]
		hit := searchHit{
			Name:         c.DisplayName,
			NameHTML:     res.NameHTML,
			File:         c.SourceFile,
			LastContact:  c.LastContact.Format(message.DisplayFormat),
			MessageCount: c.MessageCount,
		}
		for _, snip := range res.Snippets {
			hit.Snippets = append(hit.Snippets, hitSnippet{HTML: snip.HTML, TS: snip.Time.Unix()})
		}
		hits = append(hits, hit)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(hits); err != nil {
		s.logger.Warn("encode search response", "error", err)
	}
}

// parseDateParam parses an optional YYYY-MM-DD query parameter. ok is false
// only when a non-empty value does not parse.
func parseDateParam(v string) (*time.Time, bool) {
	if v == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, false
	}
	t = t.UTC()
	return &t, true
}

// sortParam maps the sort query parameter onto a sortable column.
func sortParam(v string) (search.Column, bool) {
	switch v {
	case "name":
		return search.ByName, true
	case "date":
		return search.ByLastContact, true
	case "count":
		return search.ByMessageCount, true
	}
	return 0, false
}

// boolParam interprets an optional boolean query parameter.
func boolParam(v string, def bool) bool {
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
