package provider

import "context"

const (
	EventKindUnknown int32 = iota
	EventKindPaymentSucceeded
	EventKindPaymentFailed
	EventKindChargeRefunded
)

// WebhookEvent is the provider-neutral view of a payment outcome
// notification.
type WebhookEvent struct {
	ProviderEventID string
	EventType       string
	Kind            int32

	// Reference is the external processor transaction id.
	Reference     string
	ReservationID uint64
	AmountCents   int64
	Currency      string
	PaymentMethod string
	ErrorMessage  string

	// RawPayload is the verified webhook body, kept for the payment record.
	RawPayload string
}

type Provider interface {
	Name() string
	VerifyAndParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}
