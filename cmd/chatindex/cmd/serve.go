package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdelacour/chatindex/internal/contact"
	"github.com/tdelacour/chatindex/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve <folder>",
	Short: "Serve the index, the conversations, and a search API over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s: %w", folder, ErrNotDirectory)
		}

		contacts, err := contact.ScanDir(folder, logger)
		if err != nil {
			return fmt.Errorf("scan %s: %w", folder, err)
		}
		if len(contacts) == 0 {
			return ErrNoConversations
		}

		lang, err := resolveLang()
		if err != nil {
			return err
		}
		srv, err := server.New(folder, lang, contacts, logger)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		httpSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           srv,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cmd.Context()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()

		logger.Info("serving contact index", "addr", httpSrv.Addr, "contacts", len(contacts))
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default 8080)")
	rootCmd.AddCommand(serveCmd)
}
