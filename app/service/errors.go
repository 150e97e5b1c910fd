package service

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyExists = errors.New("invoice already exists")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists")
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomUnavailable      = errors.New("room is not available")
	ErrClientNotFound       = errors.New("client not found")
	ErrWebhookRejected      = errors.New("webhook rejected")
)
