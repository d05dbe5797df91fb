package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/tdelacour/chatindex/internal/contact"
	"github.com/tdelacour/chatindex/internal/i18n"
	"github.com/tdelacour/chatindex/internal/index"
)

// Sentinel errors mapped to distinct exit codes in main.
var (
	// ErrNotDirectory reports that the folder argument is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNoConversations reports that no file in the folder had a single
	// parseable timestamp.
	ErrNoConversations = errors.New("no usable conversation found (no recognized timestamps)")
)

var (
	outputFlag string
	langFlag   string
)

func init() {
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output path for the index page (default \"index.html\")")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "interface language, fr or en (default \"fr\")")
}

// resolveLang validates the interface language from the flag or the config
// file. Only exact supported codes are accepted.
func resolveLang() (string, error) {
	lang := orDefault(langFlag, cfg.Output.Lang)
	if lang == "" {
		return i18n.DefaultLang, nil
	}
	if !i18n.Supported(lang) {
		return "", fmt.Errorf("unsupported language %q (supported: fr, en)", lang)
	}
	return lang, nil
}

// runGenerate scans folder and writes the index page. Unusable files are
// skipped silently; only the usable-contact count is reported.
func runGenerate(folder string) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", folder, ErrNotDirectory)
	}

	lang, err := resolveLang()
	if err != nil {
		return err
	}
	output := orDefault(outputFlag, cfg.Output.File)

	contacts, err := contact.ScanDir(folder, logger)
	if err != nil {
		return fmt.Errorf("scan %s: %w", folder, err)
	}
	if len(contacts) == 0 {
		return ErrNoConversations
	}

	if err := index.WriteFile(output, contacts, lang); err != nil {
		return fmt.Errorf("generate index: %w", err)
	}

	fmt.Printf("OK: index written to %s (%d contacts)\n", output, len(contacts))
	return nil
}
