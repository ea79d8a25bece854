package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parisxmas/OxiSign/internal/service"
)

type StatusHandler struct {
	svc *service.StatusService
}

func NewStatusHandler(svc *service.StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// Cached serves the last webhook-observed status record. A request nobody
// has reported on yet is "unknown", never an error.
func (h *StatusHandler) Cached(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	record, err := h.svc.Cached(r.Context(), id)
	if err != nil {
		log.Printf("signature-status: cached read for %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to read status")
		return
	}
	if record == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "unknown"})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Live queries the provider directly, bypassing the store.
func (h *StatusHandler) Live(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	live, err := h.svc.Live(r.Context(), id)
	if err != nil {
		log.Printf("signature-status: live read for %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch signature request")
		return
	}
	writeJSON(w, http.StatusOK, live)
}
