package models

import "encoding/json"

// StatusRecord is the value persisted under "signature-status:{id}".
// It always reflects the most recent webhook observation for that request;
// redeliveries simply overwrite it.
type StatusRecord struct {
	Status    string          `json:"status"`
	Event     string          `json:"event"`
	UpdatedAt int64           `json:"updatedAt"`
	Raw       json.RawMessage `json:"raw"`
}
