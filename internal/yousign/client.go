// Package yousign is a client for the Yousign v3 REST API.
//
// It covers exactly the calls the signing flow needs: create a signature
// request, upload the signable document, add the signer, activate, read the
// request back, and fetch a signer's audit trail. Every call is a single
// bearer-authenticated HTTP request; retry policy belongs to the caller.
package yousign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ------------------------------------------------------------------
// Low-level call
// ------------------------------------------------------------------

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Body: raw}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &ProviderError{Op: op, StatusCode: resp.StatusCode, Body: raw, Err: err}
		}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	return c.do(ctx, op, http.MethodPost, path, "application/json", bytes.NewReader(body), out)
}

// ------------------------------------------------------------------
// Operations
// ------------------------------------------------------------------

// CreateSignatureRequest creates a draft signature request and returns its id.
func (c *Client) CreateSignatureRequest(ctx context.Context, name, deliveryMode, timezone string) (*SignatureRequest, error) {
	payload := map[string]string{
		"name":          name,
		"delivery_mode": deliveryMode,
		"timezone":      timezone,
	}
	var sr SignatureRequest
	if err := c.postJSON(ctx, "create signature request", "/signature_requests", payload, &sr); err != nil {
		return nil, err
	}
	if sr.ID == "" {
		return nil, &ProviderError{Op: "create signature request", StatusCode: http.StatusOK, Body: []byte("response missing id")}
	}
	return &sr, nil
}

// UploadDocument attaches finalized document bytes to a signature request as
// a signable document. Returns the provider-assigned document id.
func (c *Client) UploadDocument(ctx context.Context, requestID, filename string, data []byte) (*Document, error) {
	const op = "upload document"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &ProviderError{Op: op, Err: err}
	}
	if _, err := part.Write(data); err != nil {
		return nil, &ProviderError{Op: op, Err: err}
	}
	if err := mw.WriteField("nature", "signable_document"); err != nil {
		return nil, &ProviderError{Op: op, Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &ProviderError{Op: op, Err: err}
	}

	var doc Document
	path := fmt.Sprintf("/signature_requests/%s/documents", requestID)
	if err := c.do(ctx, op, http.MethodPost, path, mw.FormDataContentType(), &buf, &doc); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		return nil, &ProviderError{Op: op, StatusCode: http.StatusOK, Body: []byte("response missing id")}
	}
	return &doc, nil
}

// AddSigner registers the signer with one signature field anchored at a fixed
// page coordinate. Authentication mode and signature level are fixed policy:
// no OTP challenge, plain electronic signature.
func (c *Client) AddSigner(ctx context.Context, requestID, documentID string, info SignerInfo) (*Signer, error) {
	const op = "add signer"

	payload := map[string]any{
		"info":                          info,
		"signature_authentication_mode": "no_otp",
		"signature_level":               "electronic_signature",
		"fields": []map[string]any{{
			"document_id": documentID,
			"type":        "signature",
			"height":      40,
			"width":       85,
			"page":        1,
			"x":           100,
			"y":           100,
		}},
	}
	var signer Signer
	path := fmt.Sprintf("/signature_requests/%s/signers", requestID)
	if err := c.postJSON(ctx, op, path, payload, &signer); err != nil {
		return nil, err
	}
	if signer.ID == "" {
		return nil, &ProviderError{Op: op, StatusCode: http.StatusOK, Body: []byte("response missing id")}
	}
	return &signer, nil
}

// Activate triggers delivery to the signer. The response sometimes already
// carries the first signer's signing link, so the caller inspects it before
// falling back to polling.
func (c *Client) Activate(ctx context.Context, requestID string) (*SignatureRequest, error) {
	var sr SignatureRequest
	path := fmt.Sprintf("/signature_requests/%s/activate", requestID)
	if err := c.do(ctx, "activate signature request", http.MethodPost, path, "application/json", nil, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// GetSignatureRequest reads a signature request back. Idempotent; used both
// for link polling and the live status endpoint.
func (c *Client) GetSignatureRequest(ctx context.Context, requestID string) (*SignatureRequest, error) {
	var sr SignatureRequest
	path := fmt.Sprintf("/signature_requests/%s", requestID)
	if err := c.do(ctx, "get signature request", http.MethodGet, path, "", nil, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// AuditTrail fetches a signer's audit trail as raw JSON for proxying.
func (c *Client) AuditTrail(ctx context.Context, requestID, signerID string) (json.RawMessage, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/signature_requests/%s/signers/%s/audit_trails", requestID, signerID)
	if err := c.do(ctx, "fetch audit trail", http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
