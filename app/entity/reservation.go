package entity

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

const (
	ReservationPaymentUnpaid = "unpaid"
	ReservationPaymentPaid   = "paid"
	ReservationPaymentFailed = "failed"
)

type Reservation struct {
	ID uint64

	Code     string
	ClientID uint64
	RoomID   uint64

	CheckIn  time.Time
	CheckOut time.Time

	Status        string
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationDetail joins the client and room rows a notification needs.
type ReservationDetail struct {
	Reservation

	ClientName  string
	ClientEmail string
	RoomName    string
}
