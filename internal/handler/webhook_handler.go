package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/parisxmas/OxiSign/internal/service"
)

type WebhookHandler struct {
	svc *service.WebhookService
}

func NewWebhookHandler(svc *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// Receive ingests a provider notification. The raw body is read and parsed
// in one place regardless of how the transport framed it. Once the payload
// parses we always answer 200 — a non-2xx here would trigger provider-side
// redelivery storms — so a failed store write is logged, not surfaced.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	id, err := h.svc.Ingest(r.Context(), body)
	if err != nil {
		if errors.Is(err, service.ErrMalformedPayload) {
			log.Printf("webhook: %v", err)
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		log.Printf("webhook: store write failed for %s: %v", id, err)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
