package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/parisxmas/OxiSign/internal/models"
)

// StatusService exposes the two independent status read paths: the cached
// record fed by webhooks, and a live query against the provider.
type StatusService struct {
	store    StatusStore
	provider Provider
}

func NewStatusService(store StatusStore, provider Provider) *StatusService {
	return &StatusService{store: store, provider: provider}
}

// Cached returns the last webhook-observed record for a request, or nil when
// no webhook has been received yet. Absence is not an error.
func (s *StatusService) Cached(ctx context.Context, signatureRequestID string) (*models.StatusRecord, error) {
	value, ok, err := s.store.Get(ctx, StatusKey(signatureRequestID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var record models.StatusRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, fmt.Errorf("decode status record for %s: %w", signatureRequestID, err)
	}
	return &record, nil
}

// LiveStatus is the provider's current view of a request.
type LiveStatus struct {
	Status  string         `json:"status"`
	Signers []SignerStatus `json:"signers"`
}

type SignerStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Live bypasses the store and asks the provider directly.
func (s *StatusService) Live(ctx context.Context, signatureRequestID string) (*LiveStatus, error) {
	sr, err := s.provider.GetSignatureRequest(ctx, signatureRequestID)
	if err != nil {
		return nil, err
	}
	live := &LiveStatus{Status: sr.Status, Signers: make([]SignerStatus, 0, len(sr.Signers))}
	for _, signer := range sr.Signers {
		live.Signers = append(live.Signers, SignerStatus{ID: signer.ID, Status: signer.Status})
	}
	return live, nil
}
