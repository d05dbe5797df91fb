package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tdelacour/chatindex/internal/debounce"
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Regenerate the index whenever the folder changes",
	Long: `watch generates the index once, then watches the folder and
regenerates after changes. Bursts of file events (a chat client rewriting
many exports at once) are debounced into a single regeneration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s: %w", folder, ErrNotDirectory)
		}

		// If the output lands inside the watched folder, its own write
		// events must not re-trigger regeneration.
		output, err := filepath.Abs(orDefault(outputFlag, cfg.Output.File))
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}

		regenerate := func() {
			if err := runGenerate(folder); err != nil {
				// A transiently empty folder is not fatal in
				// watch mode; keep watching.
				logger.Warn("regenerate failed", "error", err)
			}
		}
		regenerate()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(folder); err != nil {
			return fmt.Errorf("watch %s: %w", folder, err)
		}

		d := debounce.New(debounce.DefaultDelay, regenerate)
		defer d.Stop()

		ctx := cmd.Context()
		logger.Info("watching folder", "folder", folder)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !relevantEvent(ev, output) {
					continue
				}
				logger.Debug("conversation changed", "file", filepath.Base(ev.Name), "op", ev.Op.String())
				d.Trigger()
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", "error", err)
			}
		}
	},
}

// relevantEvent reports whether a filesystem event can change the index.
// Events on the generated output itself are ignored.
func relevantEvent(ev fsnotify.Event, output string) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), ".html") {
		return false
	}
	if p, err := filepath.Abs(ev.Name); err == nil && p == output {
		return false
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
