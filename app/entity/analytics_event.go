package entity

import "time"

const (
	AnalyticsStatusSuccess  = "success"
	AnalyticsStatusFailed   = "failed"
	AnalyticsStatusRefunded = "refunded"
)

// PaymentAnalyticsEvent is an append-only reporting row, distinct from the
// authoritative Payment record. Never mutated or deleted.
type PaymentAnalyticsEvent struct {
	ID uint64

	PaymentMethod string
	AmountCents   int64
	Currency      string
	Status        string
	ErrorMessage  *string

	CreatedAt time.Time
}
