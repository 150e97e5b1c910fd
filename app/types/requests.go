package types

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

type CreateInvoiceRequest struct {
	PaiementID    uint64 `json:"paiement_id" validate:"required"`
	MontantTotal  int64  `json:"montant_total" validate:"required,gt=0"`
	Devise        string `json:"devise" validate:"required,len=3"`
	TypeService   string `json:"type_service" validate:"required"`
	ClientID      uint64 `json:"client_id" validate:"required"`
	NumeroFacture string `json:"numero_facture"`
	Statut        string `json:"statut" validate:"omitempty,oneof=payee partielle annulee"`
	LienPDF       string `json:"lien_pdf"`
}

func NewCreateInvoiceRequestFromContext(ctx echo.Context) (*CreateInvoiceRequest, error) {
	var body CreateInvoiceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.Devise = strings.ToUpper(strings.TrimSpace(body.Devise))
	body.TypeService = strings.TrimSpace(body.TypeService)
	body.NumeroFacture = strings.TrimSpace(body.NumeroFacture)
	body.Statut = strings.TrimSpace(body.Statut)
	body.LienPDF = strings.TrimSpace(body.LienPDF)

	return &body, nil
}

func (r *CreateInvoiceRequest) Validate() error {
	return validate.Struct(r)
}

type CreateReservationRequest struct {
	ClientID uint64    `json:"client_id" validate:"required"`
	RoomID   uint64    `json:"room_id" validate:"required"`
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
}

func NewCreateReservationRequestFromContext(ctx echo.Context) (*CreateReservationRequest, error) {
	var body CreateReservationRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *CreateReservationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !r.CheckOut.After(r.CheckIn) {
		return errors.New("check_out must be after check_in")
	}
	return nil
}

type UpdateReservationRequest struct {
	ID uint64 `json:"-"`

	ClientID      *uint64    `json:"client_id"`
	RoomID        *uint64    `json:"room_id"`
	CheckIn       *time.Time `json:"check_in"`
	CheckOut      *time.Time `json:"check_out"`
	Statut        *string    `json:"statut" validate:"omitempty,oneof=pending confirmed cancelled"`
	PaymentStatus *string    `json:"payment_status" validate:"omitempty,oneof=unpaid paid failed"`
}

func NewUpdateReservationRequestFromContext(ctx echo.Context) (*UpdateReservationRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}

	var body UpdateReservationRequest
	if err := ctx.Bind(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	body.ID = id

	if body.Statut != nil {
		trimmed := strings.TrimSpace(*body.Statut)
		body.Statut = &trimmed
	}
	if body.PaymentStatus != nil {
		trimmed := strings.TrimSpace(*body.PaymentStatus)
		body.PaymentStatus = &trimmed
	}

	return &body, nil
}

func (r *UpdateReservationRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid reservation id")
	}
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.CheckIn != nil && r.CheckOut != nil && !r.CheckOut.After(*r.CheckIn) {
		return errors.New("check_out must be after check_in")
	}
	return nil
}

type CreatePaymentRequest struct {
	ReservationID uint64 `json:"reservation_id" validate:"required"`
	Montant       int64  `json:"montant" validate:"required,gt=0"`
	Devise        string `json:"devise" validate:"required,len=3"`
	Methode       string `json:"methode" validate:"required"`
	Statut        string `json:"statut" validate:"required,oneof=pending complete failed refunded"`
	Reference     string `json:"reference" validate:"required"`
}

func NewCreatePaymentRequestFromContext(ctx echo.Context) (*CreatePaymentRequest, error) {
	var body CreatePaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.Devise = strings.ToUpper(strings.TrimSpace(body.Devise))
	body.Methode = strings.TrimSpace(body.Methode)
	body.Statut = strings.TrimSpace(body.Statut)
	body.Reference = strings.TrimSpace(body.Reference)

	return &body, nil
}

func (r *CreatePaymentRequest) Validate() error {
	return validate.Struct(r)
}

type StripeWebhookRequest struct {
	Signature string
	Payload   []byte
}

func NewStripeWebhookRequestFromContext(ctx echo.Context) (*StripeWebhookRequest, error) {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, err
	}

	return &StripeWebhookRequest{
		Signature: strings.TrimSpace(ctx.Request().Header.Get("Stripe-Signature")),
		Payload:   payload,
	}, nil
}

func (r *StripeWebhookRequest) Validate() error {
	if len(r.Payload) == 0 {
		return errors.New("payload is required")
	}
	return nil
}

type IDRequest struct {
	ID uint64
}

func NewIDRequestFromContext(ctx echo.Context) (*IDRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, errors.New("invalid id")
	}
	return &IDRequest{ID: id}, nil
}

type ListRequest struct {
	Limit  int32
	Offset int32
}

func NewListRequestFromContext(ctx echo.Context) (*ListRequest, error) {
	req := &ListRequest{Limit: 100, Offset: 0}

	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.ParseInt(limitRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Limit = int32(limit)
	}
	if offsetRaw := strings.TrimSpace(ctx.QueryParam("offset")); offsetRaw != "" {
		offset, err := strconv.ParseInt(offsetRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Offset = int32(offset)
	}

	return req, nil
}

func (r *ListRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	return nil
}
