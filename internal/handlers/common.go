// Package handlers serves a read-only HTTP view of the review set so the
// issues file can be browsed without opening the JSON by hand.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/punkarchives/metafix/internal/models"
	"github.com/punkarchives/metafix/internal/review"
)

type Handler struct {
	issues []models.IssueRecord
}

// New loads the issues file and returns a handler serving it. The file is
// read once at startup; restart the server to pick up changes.
func New(issuesFile string) (*Handler, error) {
	issues, err := review.Load(issuesFile)
	if err != nil {
		return nil, err
	}
	review.SortByPriority(issues)

	return &Handler{issues: issues}, nil
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
