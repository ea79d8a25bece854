package service

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload marks webhook bodies that cannot be parsed or are
// missing the signature request id.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// PollingExhaustedError is the terminal resolver failure: activation
// succeeded but no signing link appeared before attempts ran out.
type PollingExhaustedError struct {
	RequestID string
	Attempts  int
}

func (e *PollingExhaustedError) Error() string {
	return fmt.Sprintf("no signing link for request %s after %d attempts", e.RequestID, e.Attempts)
}
