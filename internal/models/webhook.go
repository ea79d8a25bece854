package models

// WebhookPayload is the subset of a Yousign webhook notification we extract.
// Older provider versions send "event" instead of "event_name".
type WebhookPayload struct {
	EventName string      `json:"event_name"`
	Event     string      `json:"event"`
	Data      WebhookData `json:"data"`
}

type WebhookData struct {
	SignatureRequest WebhookSignatureRequest `json:"signature_request"`
}

type WebhookSignatureRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
