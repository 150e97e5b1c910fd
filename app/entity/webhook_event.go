package entity

import "time"

const (
	WebhookEventStatusProcessed int32 = 10
	WebhookEventStatusRejected  int32 = 20
)

// WebhookEvent records every inbound provider delivery. The unique
// (provider, provider_event_id) pair makes webhook retries idempotent.
type WebhookEvent struct {
	ID uint64

	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	Status          int32
	Error           *string

	CreatedAt time.Time
}
