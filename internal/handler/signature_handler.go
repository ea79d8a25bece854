package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/parisxmas/OxiSign/internal/service"
	"github.com/parisxmas/OxiSign/internal/yousign"
)

type SignatureHandler struct {
	svc *service.SignatureService
}

func NewSignatureHandler(svc *service.SignatureService) *SignatureHandler {
	return &SignatureHandler{svc: svc}
}

func (h *SignatureHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	// The flow keeps running even if the browser goes away: activation has
	// side effects on the provider side, so abandoning the poll loop
	// mid-flight would strand a request that is about to become signable.
	ctx := context.WithoutCancel(r.Context())

	session, err := h.svc.Start(ctx, req.FirstName, req.LastName, req.Email)
	if err != nil {
		var provErr *yousign.ProviderError
		var exhausted *service.PollingExhaustedError
		switch {
		case errors.As(err, &provErr):
			log.Printf("start-signature: %s failed: %v", provErr.Op, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "failed to " + provErr.Op,
				"details": string(provErr.Body),
			})
		case errors.As(err, &exhausted):
			log.Printf("start-signature: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "failed to get signature link after polling",
				"details": exhausted.RequestID,
			})
		default:
			log.Printf("start-signature: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, session)
}
