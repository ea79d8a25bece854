package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// AuditTrailFetcher is the single provider call this handler proxies.
type AuditTrailFetcher interface {
	AuditTrail(ctx context.Context, requestID, signerID string) (json.RawMessage, error)
}

type AuditHandler struct {
	provider AuditTrailFetcher
}

func NewAuditHandler(provider AuditTrailFetcher) *AuditHandler {
	return &AuditHandler{provider: provider}
}

// Get proxies the provider's audit trail for one signer. Both query params
// are required; nothing is fetched without them.
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := r.URL.Query().Get("signatureRequestId")
	signerID := r.URL.Query().Get("signerId")
	if requestID == "" || signerID == "" {
		writeError(w, http.StatusBadRequest, "missing parameters")
		return
	}

	data, err := h.provider.AuditTrail(r.Context(), requestID, signerID)
	if err != nil {
		log.Printf("audit-trail: fetch for %s/%s failed: %v", requestID, signerID, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch audit trail")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
