package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/punkarchives/metafix/internal/handlers"
	"github.com/punkarchives/metafix/internal/review"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var issuesFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only HTTP view of the review set",
		Long: `Starts a small HTTP server over the issues file so the review set
can be browsed from a browser or curl instead of reading the raw JSON.

The server is read-only. Edit the issues file with correct-dates or by hand,
then restart the server to pick up the changes.`,
		Example: `  # Serve metadata_issues.json on the default port
  metafix serve

  # Serve a different file on a custom port
  metafix serve --issues /tmp/issues.json --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := handlers.New(issuesFile)
			if err != nil {
				return err
			}

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/issues", handler.HandleIssues)
			mux.HandleFunc("/api/issues/", handler.HandleIssueDetail)
			mux.HandleFunc("/api/summary", handler.HandleSummary)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Review server available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&issuesFile, "issues", review.DefaultIssuesFile, "Path to the issues file")

	return cmd
}
