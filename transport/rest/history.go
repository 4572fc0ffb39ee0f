package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

func (that *Server) recentHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "recentHandler")

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive number", http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	records, err := that.historyService.Recent(r.Context(), limit)
	if err != nil {
		log.Error("failed to get recent matches", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, records)
}

func (that *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "summaryHandler")

	summaries, err := that.historyService.Summary(r.Context())
	if err != nil {
		log.Error("failed to get match summary", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, summaries)
}

func (that *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
