// Package store is a client for an Upstash-compatible REST key-value store.
//
// Wire contract: GET {base}/get/{key} and POST {base}/set/{key}/{value},
// bearer-authenticated, values always strings. A missing key is a miss, not
// an error; the server answers {"result":null}.
package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Set writes value under key, overwriting any previous value.
func (c *Client) Set(ctx context.Context, key, value string) error {
	target := c.baseURL + "/set/" + url.PathEscape(key) + "/" + url.PathEscape(value)
	_, err := c.call(ctx, "set", http.MethodPost, target)
	return err
}

// Get reads the value under key. The second return is false when the key has
// never been written.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	target := c.baseURL + "/get/" + url.PathEscape(key)
	raw, err := c.call(ctx, "get", http.MethodGet, target)
	if err != nil {
		return "", false, err
	}
	var resp struct {
		Result *string `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", false, &Error{Op: "get", Body: raw, Err: err}
	}
	if resp.Result == nil {
		return "", false, nil
	}
	return *resp.Result, true, nil
}

func (c *Client) call(ctx context.Context, op, method, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Body: raw}
	}
	return raw, nil
}
