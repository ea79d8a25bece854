package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/parisxmas/OxiSign/internal/yousign"
)

// SignatureService drives a signature request through the provider's
// lifecycle: render the document, create the request, upload, add the
// signer, activate, then resolve the hosted signing link.
//
// The provider computes signing links asynchronously after activation, so
// when activation does not return one the service polls the request detail
// with a fixed interval until the link appears or attempts run out. If a
// later stage fails, resources created by earlier stages are left behind on
// the provider side; there is no rollback.
type SignatureService struct {
	provider    Provider
	preparer    Preparer
	template    []byte
	maxAttempts int
	interval    time.Duration
}

func NewSignatureService(provider Provider, preparer Preparer, template []byte, maxAttempts int, interval time.Duration) *SignatureService {
	return &SignatureService{
		provider:    provider,
		preparer:    preparer,
		template:    template,
		maxAttempts: maxAttempts,
		interval:    interval,
	}
}

// SigningSession is what the browser needs to embed the signing ceremony.
type SigningSession struct {
	IframeURL          string `json:"iframeUrl"`
	SignatureRequestID string `json:"signatureRequestId"`
}

// Start runs the full flow for a single signer and blocks until the signing
// link is resolved or the flow fails.
func (s *SignatureService) Start(ctx context.Context, firstName, lastName, email string) (*SigningSession, error) {
	doc, err := s.preparer.Prepare(s.template, map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"address":   email,
	})
	if err != nil {
		return nil, fmt.Errorf("prepare document: %w", err)
	}

	sr, err := s.provider.CreateSignatureRequest(ctx, "Signature Request", "email", "Europe/Paris")
	if err != nil {
		return nil, err
	}

	uploaded, err := s.provider.UploadDocument(ctx, sr.ID, fmt.Sprintf("nda-%s.pdf", uuid.NewString()), doc)
	if err != nil {
		return nil, err
	}

	if _, err := s.provider.AddSigner(ctx, sr.ID, uploaded.ID, yousign.SignerInfo{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Locale:    "fr",
	}); err != nil {
		return nil, err
	}

	activated, err := s.provider.Activate(ctx, sr.ID)
	if err != nil {
		return nil, err
	}
	if link := activated.FirstSignerLink(); link != "" {
		return &SigningSession{IframeURL: link, SignatureRequestID: sr.ID}, nil
	}

	return s.pollSigningLink(ctx, sr.ID)
}

// pollSigningLink reads the request detail up to maxAttempts times, sleeping
// interval between attempts. The sleep is an ordinary timer wait, so any
// number of these loops can be in flight without blocking each other.
func (s *SignatureService) pollSigningLink(ctx context.Context, requestID string) (*SigningSession, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		detail, err := s.provider.GetSignatureRequest(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if link := detail.FirstSignerLink(); link != "" {
			log.Printf("signing link resolved for %s after %d poll(s)", requestID, attempt)
			return &SigningSession{IframeURL: link, SignatureRequestID: requestID}, nil
		}
		if attempt == s.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.interval):
		}
	}
	return nil, &PollingExhaustedError{RequestID: requestID, Attempts: s.maxAttempts}
}
