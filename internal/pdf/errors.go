package pdf

import "fmt"

// TemplateError is returned when the template cannot be read, a named field
// does not exist in it or is already locked, or the fill or lock step fails.
type TemplateError struct {
	Reason string
	Err    error
}

func (e *TemplateError) Error() string {
	if e.Err == nil {
		return "pdf template: " + e.Reason
	}
	return fmt.Sprintf("pdf template: %s: %v", e.Reason, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }
