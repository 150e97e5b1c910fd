package entity

import "time"

const (
	InvoiceStatusPaid      = "payee"
	InvoiceStatusPartial   = "partielle"
	InvoiceStatusCancelled = "annulee"
)

type Invoice struct {
	ID uint64

	InvoiceNumber string
	PaymentID     uint64
	ClientID      uint64

	IssueDate   time.Time
	AmountCents int64
	Currency    string
	ServiceType string
	Status      string

	PDFLink *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
