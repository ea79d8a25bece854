package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parisxmas/OxiSign/internal/models"
)

const statusKeyPrefix = "signature-status:"

// StatusKey is the store key for a signature request's status record.
func StatusKey(signatureRequestID string) string {
	return statusKeyPrefix + signatureRequestID
}

// WebhookService turns provider notifications into status records.
// Redelivered events overwrite the previous record with equivalent content;
// the provider does not guarantee exactly-once delivery.
type WebhookService struct {
	store StatusStore
}

func NewWebhookService(store StatusStore) *WebhookService {
	return &WebhookService{store: store}
}

// Ingest parses a raw webhook body, extracts the request id, status and
// event name, and writes a StatusRecord to the store. It returns the request
// id alongside any store error so the caller can log the failure without
// losing the id. Parse failures and a missing id wrap ErrMalformedPayload.
func (s *WebhookService) Ingest(ctx context.Context, raw []byte) (string, error) {
	var payload models.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	id := payload.Data.SignatureRequest.ID
	if id == "" {
		return "", fmt.Errorf("%w: missing signature request id", ErrMalformedPayload)
	}

	event := payload.EventName
	if event == "" {
		event = payload.Event
	}

	record := models.StatusRecord{
		Status:    payload.Data.SignatureRequest.Status,
		Event:     event,
		UpdatedAt: time.Now().UnixMilli(),
		Raw:       json.RawMessage(raw),
	}
	value, err := json.Marshal(record)
	if err != nil {
		return id, fmt.Errorf("encode status record for %s: %w", id, err)
	}

	if err := s.store.Set(ctx, StatusKey(id), string(value)); err != nil {
		return id, fmt.Errorf("store status for %s: %w", id, err)
	}
	return id, nil
}
