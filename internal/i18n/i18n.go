// Package i18n holds the interface string tables for the generated index.
// The tables are immutable after load; both the generation step and the
// page's client-side runtime consume them.
package i18n

import "golang.org/x/text/language"

// Texts is the full set of interface strings for one language. The JSON
// keys are the identifiers the page's client runtime looks up.
type Texts struct {
	Title             string `json:"title"`
	Intro             string `json:"intro"`
	SearchPlaceholder string `json:"search_placeholder"`
	ScopeLabel        string `json:"scope_label"`
	ScopeName         string `json:"scope_name"`
	ScopeMessage      string `json:"scope_message"`
	DateStartLabel    string `json:"date_start_label"`
	DateEndLabel      string `json:"date_end_label"`
	FuzzyLabel        string `json:"fuzzy_label"`
	ColContact        string `json:"col_contact"`
	ColLastContact    string `json:"col_last_contact"`
	ColMessages       string `json:"col_messages"`
	ColPreview        string `json:"col_preview"`
	LangFR            string `json:"lang_fr"`
	LangEN            string `json:"lang_en"`
	LangNote          string `json:"lang_note"`
	SearchFuzzy       string `json:"search_fuzzy"` // marker appended to fuzzy-only previews
}

// DefaultLang is the interface language used when no preference matches.
const DefaultLang = "fr"

var tables = map[string]Texts{
	"fr": {
		Title:             "Index des contacts",
		Intro:             "Clique sur un en-tête pour trier les colonnes.",
		SearchPlaceholder: "Recherche texte ou contact...",
		ScopeLabel:        "Portée :",
		ScopeName:         "Contact",
		ScopeMessage:      "Messages",
		DateStartLabel:    "Date de début:",
		DateEndLabel:      "Date de fin:",
		FuzzyLabel:        "Recherche approximative (Fuzzy)",
		ColContact:        "Contact",
		ColLastContact:    "Dernier contact",
		ColMessages:       "Messages",
		ColPreview:        "Aperçu",
		LangFR:            "Français",
		LangEN:            "English",
		LangNote:          "La langue a été mise à jour.",
		SearchFuzzy:       " (Fuzzy)",
	},
	"en": {
		Title:             "Contacts Index",
		Intro:             "Click on a header to sort the columns.",
		SearchPlaceholder: "Search text or contact...",
		ScopeLabel:        "Scope:",
		ScopeName:         "Contact",
		ScopeMessage:      "Messages",
		DateStartLabel:    "Start Date:",
		DateEndLabel:      "End Date:",
		FuzzyLabel:        "Fuzzy Search",
		ColContact:        "Contact",
		ColLastContact:    "Last Contact",
		ColMessages:       "Messages",
		ColPreview:        "Preview",
		LangFR:            "Français",
		LangEN:            "English",
		LangNote:          "Language updated.",
		SearchFuzzy:       " (Fuzzy)",
	},
}

// Supported reports whether a string table exists for the language code.
func Supported(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// Lookup returns the string table for a language code, falling back to the
// default table for unknown codes.
func Lookup(lang string) Texts {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[DefaultLang]
}

// All returns every table keyed by language code, for embedding into the
// generated page. Callers must not mutate the result.
func All() map[string]Texts {
	return tables
}

// Tag returns the collation tag for a supported language code.
func Tag(lang string) language.Tag {
	if lang == "en" {
		return language.English
	}
	return language.French
}
