package handlers

import (
	"net/http"
	"strings"

	"github.com/punkarchives/metafix/internal/models"
)

// HandleIssues serves the full review set in priority order. An optional
// ?issue=missing_band query narrows the list to entries carrying that issue.
func (h *Handler) HandleIssues(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	issue := r.URL.Query().Get("issue")
	if issue == "" {
		h.writeJSON(w, h.issues)
		return
	}

	filtered := make([]models.IssueRecord, 0)
	for _, entry := range h.issues {
		if entry.HasIssue(issue) {
			filtered = append(filtered, entry)
		}
	}
	h.writeJSON(w, filtered)
}

// HandleIssueDetail serves a single entry by identifier.
func (h *Handler) HandleIssueDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	identifier := strings.TrimPrefix(r.URL.Path, "/api/issues/")
	for _, entry := range h.issues {
		if entry.Identifier == identifier {
			h.writeJSON(w, entry)
			return
		}
	}
	h.writeError(w, "Item not found", http.StatusNotFound)
}

// HandleSummary serves aggregate counts over the review set.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	counts := map[string]int{}
	for _, entry := range h.issues {
		for _, issue := range entry.Issues {
			counts[issue]++
		}
	}

	h.writeJSON(w, map[string]interface{}{
		"total_items": len(h.issues),
		"issues":      counts,
	})
}
