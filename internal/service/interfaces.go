package service

import (
	"context"
	"encoding/json"

	"github.com/parisxmas/OxiSign/internal/yousign"
)

// Provider is the slice of the Yousign client the services consume.
// Implemented by *yousign.Client; stubbed in tests.
type Provider interface {
	CreateSignatureRequest(ctx context.Context, name, deliveryMode, timezone string) (*yousign.SignatureRequest, error)
	UploadDocument(ctx context.Context, requestID, filename string, data []byte) (*yousign.Document, error)
	AddSigner(ctx context.Context, requestID, documentID string, info yousign.SignerInfo) (*yousign.Signer, error)
	Activate(ctx context.Context, requestID string) (*yousign.SignatureRequest, error)
	GetSignatureRequest(ctx context.Context, requestID string) (*yousign.SignatureRequest, error)
	AuditTrail(ctx context.Context, requestID, signerID string) (json.RawMessage, error)
}

// StatusStore is the key-value store holding webhook-fed status records.
// Implemented by *store.Client.
type StatusStore interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
}

// Preparer renders finalized document bytes from a template and field values.
// Implemented by *pdf.Preparer.
type Preparer interface {
	Prepare(template []byte, fields map[string]string) ([]byte, error)
}
