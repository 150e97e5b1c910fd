package entity

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusComplete = "complete"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Payment struct {
	ID uint64

	ReservationID uint64

	AmountCents int64
	Currency    string
	Method      string
	Status      string

	// Reference is the external processor transaction id, unique per payment.
	Reference  string
	RawDetails string

	CreatedAt time.Time
	UpdatedAt time.Time
}
