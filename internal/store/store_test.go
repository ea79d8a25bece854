package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// fakeStore mimics the Upstash REST surface over an in-memory map.
func fakeStore(t *testing.T, data map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer store-token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		switch {
		case r.Method == http.MethodPost && len(r.URL.Path) > 5 && r.URL.Path[:5] == "/set/":
			rest := r.URL.EscapedPath()[len("/set/"):]
			var key, value string
			for i := 0; i < len(rest); i++ {
				if rest[i] == '/' {
					key, _ = url.PathUnescape(rest[:i])
					value, _ = url.PathUnescape(rest[i+1:])
					break
				}
			}
			if key == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			data[key] = value
			w.Write([]byte(`{"result":"OK"}`))
		case r.Method == http.MethodGet && len(r.URL.Path) > 5 && r.URL.Path[:5] == "/get/":
			key, _ := url.PathUnescape(r.URL.EscapedPath()[len("/get/"):])
			value, ok := data[key]
			if !ok {
				w.Write([]byte(`{"result":null}`))
				return
			}
			resp := `{"result":` + quote(value) + `}`
			w.Write([]byte(resp))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			b = append(b, '\\', s[i])
		default:
			b = append(b, s[i])
		}
	}
	return string(append(b, '"'))
}

func TestSetGetRoundTrip(t *testing.T) {
	data := map[string]string{}
	srv := fakeStore(t, data)
	defer srv.Close()

	c := New(srv.URL, "store-token")
	ctx := context.Background()

	value := `{"status":"done","event":"signature_request.done","updatedAt":1700000000000,"raw":{"data":{"signature_request":{"id":"sr_1","status":"done"}}}}`
	if err := c.Set(ctx, "signature-status:sr_1", value); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx, "signature-status:sr_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if got != value {
		t.Fatalf("round trip mismatch:\n want %s\n got  %s", value, got)
	}
}

func TestGetAbsentKey(t *testing.T) {
	srv := fakeStore(t, map[string]string{})
	defer srv.Close()

	c := New(srv.URL, "store-token")
	_, ok, err := c.Get(context.Background(), "signature-status:never-written")
	if err != nil {
		t.Fatalf("get on absent key must not error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	c := New(srv.URL, "store-token")
	err := c.Set(context.Background(), "k", "v")
	var storeErr *Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if storeErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d", storeErr.StatusCode)
	}
}
