package entity

import "time"

const (
	EmailTypeReservationConfirmation = "reservation_confirmation"
	EmailTypeStatusUpdate            = "status_update"
	EmailTypePreArrivalReminder      = "pre_arrival_reminder"
	EmailTypePostStayThankYou        = "post_stay_thank_you"
)

const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

type EmailLog struct {
	ID uint64

	EmailType     string
	Recipient     string
	ReservationID uint64
	Status        string

	AttemptedAt  time.Time
	SentAt       *time.Time
	ErrorMessage *string
}
