package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/parisxmas/OxiSign/internal/yousign"
)

// stubProvider implements Provider with per-call function fields.
type stubProvider struct {
	createFunc   func(ctx context.Context, name, deliveryMode, timezone string) (*yousign.SignatureRequest, error)
	uploadFunc   func(ctx context.Context, requestID, filename string, data []byte) (*yousign.Document, error)
	signerFunc   func(ctx context.Context, requestID, documentID string, info yousign.SignerInfo) (*yousign.Signer, error)
	activateFunc func(ctx context.Context, requestID string) (*yousign.SignatureRequest, error)
	detailFunc   func(ctx context.Context, requestID string) (*yousign.SignatureRequest, error)

	detailCalls int
}

func (p *stubProvider) CreateSignatureRequest(ctx context.Context, name, deliveryMode, timezone string) (*yousign.SignatureRequest, error) {
	if p.createFunc != nil {
		return p.createFunc(ctx, name, deliveryMode, timezone)
	}
	return &yousign.SignatureRequest{ID: "sr_1"}, nil
}

func (p *stubProvider) UploadDocument(ctx context.Context, requestID, filename string, data []byte) (*yousign.Document, error) {
	if p.uploadFunc != nil {
		return p.uploadFunc(ctx, requestID, filename, data)
	}
	return &yousign.Document{ID: "doc_1"}, nil
}

func (p *stubProvider) AddSigner(ctx context.Context, requestID, documentID string, info yousign.SignerInfo) (*yousign.Signer, error) {
	if p.signerFunc != nil {
		return p.signerFunc(ctx, requestID, documentID, info)
	}
	return &yousign.Signer{ID: "sg_1"}, nil
}

func (p *stubProvider) Activate(ctx context.Context, requestID string) (*yousign.SignatureRequest, error) {
	if p.activateFunc != nil {
		return p.activateFunc(ctx, requestID)
	}
	return &yousign.SignatureRequest{ID: requestID}, nil
}

func (p *stubProvider) GetSignatureRequest(ctx context.Context, requestID string) (*yousign.SignatureRequest, error) {
	p.detailCalls++
	if p.detailFunc != nil {
		return p.detailFunc(ctx, requestID)
	}
	return &yousign.SignatureRequest{ID: requestID}, nil
}

func (p *stubProvider) AuditTrail(ctx context.Context, requestID, signerID string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

// stubPreparer echoes the template so tests can assert what was uploaded.
type stubPreparer struct {
	err error
}

func (p *stubPreparer) Prepare(template []byte, fields map[string]string) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return template, nil
}

func newTestService(p *stubProvider, maxAttempts int) *SignatureService {
	return NewSignatureService(p, &stubPreparer{}, []byte("%PDF-stub"), maxAttempts, 0)
}

func TestStartLinkFromActivation(t *testing.T) {
	p := &stubProvider{
		activateFunc: func(ctx context.Context, requestID string) (*yousign.SignatureRequest, error) {
			return &yousign.SignatureRequest{
				ID:      requestID,
				Signers: []yousign.Signer{{ID: "sg_1", SignatureLink: "https://sign.example/abc"}},
			}, nil
		},
	}
	svc := newTestService(p, 20)

	session, err := svc.Start(context.Background(), "Ada", "Lovelace", "ada@example.com")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.IframeURL != "https://sign.example/abc" {
		t.Fatalf("unexpected link %q", session.IframeURL)
	}
	if session.SignatureRequestID != "sr_1" {
		t.Fatalf("unexpected request id %q", session.SignatureRequestID)
	}
	if p.detailCalls != 0 {
		t.Fatalf("expected no polling, got %d detail calls", p.detailCalls)
	}
}

func TestStartLinkResolvedByPolling(t *testing.T) {
	p := &stubProvider{}
	p.detailFunc = func(ctx context.Context, requestID string) (*yousign.SignatureRequest, error) {
		if p.detailCalls < 3 {
			return &yousign.SignatureRequest{ID: requestID, Signers: []yousign.Signer{{ID: "sg_1"}}}, nil
		}
		return &yousign.SignatureRequest{
			ID:      requestID,
			Signers: []yousign.Signer{{ID: "sg_1", SignatureLink: "https://sign.example/abc"}},
		}, nil
	}
	svc := newTestService(p, 20)

	session, err := svc.Start(context.Background(), "Ada", "Lovelace", "ada@example.com")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.IframeURL != "https://sign.example/abc" {
		t.Fatalf("unexpected link %q", session.IframeURL)
	}
	if p.detailCalls != 3 {
		t.Fatalf("expected exactly 3 polls, got %d", p.detailCalls)
	}
}

func TestStartLinkOnLastAttempt(t *testing.T) {
	const max = 5
	p := &stubProvider{}
	p.detailFunc = func(ctx context.Context, requestID string) (*yousign.SignatureRequest, error) {
		if p.detailCalls < max {
			return &yousign.SignatureRequest{ID: requestID}, nil
		}
		return &yousign.SignatureRequest{
			ID:      requestID,
			Signers: []yousign.Signer{{SignatureLink: "https://sign.example/late"}},
		}, nil
	}
	svc := newTestService(p, max)

	session, err := svc.Start(context.Background(), "Ada", "Lovelace", "ada@example.com")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.IframeURL != "https://sign.example/late" {
		t.Fatalf("unexpected link %q", session.IframeURL)
	}
	if p.detailCalls != max {
		t.Fatalf("expected %d polls, got %d", max, p.detailCalls)
	}
}

func TestStartPollingExhausted(t *testing.T) {
	const max = 4
	p := &stubProvider{
		detailFunc: func(ctx context.Context, requestID string) (*yousign.SignatureRequest, error) {
			return &yousign.SignatureRequest{ID: requestID, Signers: []yousign.Signer{{ID: "sg_1"}}}, nil
		},
	}
	svc := newTestService(p, max)

	_, err := svc.Start(context.Background(), "Ada", "Lovelace", "ada@example.com")
	var exhausted *PollingExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected PollingExhaustedError, got %v", err)
	}
	if exhausted.RequestID != "sr_1" || exhausted.Attempts != max {
		t.Fatalf("unexpected error detail: %+v", exhausted)
	}
	if p.detailCalls != max {
		t.Fatalf("expected exactly %d polls, got %d", max, p.detailCalls)
	}
}

func TestStartStageFailures(t *testing.T) {
	stageErr := &yousign.ProviderError{Op: "boom", StatusCode: 500, Body: []byte(`{"detail":"upstream"}`)}

	tests := []struct {
		name string
		mod  func(p *stubProvider)
	}{
		{"create", func(p *stubProvider) {
			p.createFunc = func(ctx context.Context, name, deliveryMode, timezone string) (*yousign.SignatureRequest, error) {
				return nil, stageErr
			}
		}},
		{"upload", func(p *stubProvider) {
			p.uploadFunc = func(ctx context.Context, requestID, filename string, data []byte) (*yousign.Document, error) {
				return nil, stageErr
			}
		}},
		{"add signer", func(p *stubProvider) {
			p.signerFunc = func(ctx context.Context, requestID, documentID string, info yousign.SignerInfo) (*yousign.Signer, error) {
				return nil, stageErr
			}
		}},
		{"activate", func(p *stubProvider) {
			p.activateFunc = func(ctx context.Context, requestID string) (*yousign.SignatureRequest, error) {
				return nil, stageErr
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &stubProvider{}
			tc.mod(p)
			svc := newTestService(p, 20)

			_, err := svc.Start(context.Background(), "Ada", "Lovelace", "ada@example.com")
			var provErr *yousign.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("expected ProviderError, got %v", err)
			}
			if p.detailCalls != 0 {
				t.Fatalf("failed stage must not reach polling, got %d detail calls", p.detailCalls)
			}
		})
	}
}

func TestStartPrepareFailureSubmitsNothing(t *testing.T) {
	created := false
	p := &stubProvider{
		createFunc: func(ctx context.Context, name, deliveryMode, timezone string) (*yousign.SignatureRequest, error) {
			created = true
			return &yousign.SignatureRequest{ID: "sr_1"}, nil
		},
	}
	svc := NewSignatureService(p, &stubPreparer{err: errors.New("bad template")}, nil, 20, 0)

	if _, err := svc.Start(context.Background(), "Ada", "Lovelace", "ada@example.com"); err == nil {
		t.Fatal("expected error")
	}
	if created {
		t.Fatal("provider must not be called when document preparation fails")
	}
}
