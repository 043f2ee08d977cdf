package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/gorilla/mux"
)

// EntryLister is the read side of the audit log the HTTP layer serves.
type EntryLister interface {
	List(ctx context.Context, limit int) ([]Entry, error)
}

type Handler struct {
	store EntryLister
}

func NewHandler(store EntryLister) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("", h.handleList).Methods(http.MethodGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			limit = value
		}
	}

	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list audit entries")
		http.Error(w, "failed to list audit entries", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("failed to encode response")
	}
}
