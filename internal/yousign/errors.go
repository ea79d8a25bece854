package yousign

import "fmt"

// ProviderError is returned when a Yousign call fails: transport error,
// non-2xx status, malformed JSON, or a 2xx body missing the expected id.
// Body keeps the raw provider response for diagnostics.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("yousign: %s: %v", e.Op, e.Err)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("yousign: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("yousign: %s: status %d", e.Op, e.StatusCode)
}

func (e *ProviderError) Unwrap() error { return e.Err }
