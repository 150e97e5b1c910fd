package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

type StripeConfig struct {
	SecretKey                 string
	WebhookSecret             string
	SignatureToleranceSeconds int64
}

type StripeProvider struct {
	cfg StripeConfig
}

func NewStripeProvider(cfg StripeConfig) *StripeProvider {
	if cfg.SignatureToleranceSeconds <= 0 {
		cfg.SignatureToleranceSeconds = 300
	}
	return &StripeProvider{cfg: cfg}
}

func (p *StripeProvider) Name() string {
	return "stripe"
}

var ErrInvalidSignature = errors.New("invalid stripe signature")

func (p *StripeProvider) VerifyAndParseWebhook(_ context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	if strings.TrimSpace(p.cfg.WebhookSecret) == "" {
		return nil, errors.New("stripe webhook secret is not configured")
	}
	if !verifyStripeSignature(payload, signature, p.cfg.WebhookSecret, p.cfg.SignatureToleranceSeconds) {
		return nil, ErrInvalidSignature
	}

	var event struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}

	result := &WebhookEvent{
		ProviderEventID: strings.TrimSpace(event.ID),
		EventType:       event.Type,
		RawPayload:      string(payload),
	}

	switch event.Type {
	case "payment_intent.succeeded":
		result.Kind = EventKindPaymentSucceeded
		assignPaymentIntentFields(result, event.Data.Object)
	case "payment_intent.payment_failed":
		result.Kind = EventKindPaymentFailed
		assignPaymentIntentFields(result, event.Data.Object)
	case "charge.refunded":
		result.Kind = EventKindChargeRefunded
		assignChargeFields(result, event.Data.Object)
	default:
		result.Kind = EventKindUnknown
	}

	return result, nil
}

func assignPaymentIntentFields(event *WebhookEvent, payload json.RawMessage) {
	var object struct {
		ID                 string            `json:"id"`
		Amount             int64             `json:"amount"`
		Currency           string            `json:"currency"`
		Metadata           map[string]string `json:"metadata"`
		PaymentMethodTypes []string          `json:"payment_method_types"`
		LastPaymentError   *struct {
			Message string `json:"message"`
		} `json:"last_payment_error"`
	}
	if json.Unmarshal(payload, &object) != nil {
		return
	}

	event.Reference = strings.TrimSpace(object.ID)
	event.AmountCents = object.Amount
	event.Currency = strings.ToUpper(strings.TrimSpace(object.Currency))
	event.PaymentMethod = firstOrDefault(object.PaymentMethodTypes, "card")
	event.ReservationID = parseReservationID(object.Metadata)
	if object.LastPaymentError != nil {
		event.ErrorMessage = strings.TrimSpace(object.LastPaymentError.Message)
	}
}

func assignChargeFields(event *WebhookEvent, payload json.RawMessage) {
	var object struct {
		PaymentIntent  string            `json:"payment_intent"`
		AmountRefunded int64             `json:"amount_refunded"`
		Currency       string            `json:"currency"`
		Metadata       map[string]string `json:"metadata"`
	}
	if json.Unmarshal(payload, &object) != nil {
		return
	}

	event.Reference = strings.TrimSpace(object.PaymentIntent)
	event.AmountCents = object.AmountRefunded
	event.Currency = strings.ToUpper(strings.TrimSpace(object.Currency))
	event.PaymentMethod = "card"
	event.ReservationID = parseReservationID(object.Metadata)
}

func parseReservationID(metadata map[string]string) uint64 {
	raw := strings.TrimSpace(metadata["reservation_id"])
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func firstOrDefault(values []string, fallback string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return fallback
}

func verifyStripeSignature(payload []byte, signatureHeader string, webhookSecret string, toleranceSeconds int64) bool {
	signatureHeader = strings.TrimSpace(signatureHeader)
	if signatureHeader == "" || strings.TrimSpace(webhookSecret) == "" {
		return false
	}

	parts := strings.Split(signatureHeader, ",")
	var ts string
	v1 := make([]string, 0, 1)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "t=") {
			ts = strings.TrimSpace(strings.TrimPrefix(part, "t="))
		}
		if strings.HasPrefix(part, "v1=") {
			v1 = append(v1, strings.TrimSpace(strings.TrimPrefix(part, "v1=")))
		}
	}
	if ts == "" || len(v1) == 0 {
		return false
	}

	tsUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	now := time.Now().Unix()
	if now-tsUnix > toleranceSeconds || tsUnix-now > toleranceSeconds {
		return false
	}

	signedPayload := []byte(ts + "." + string(payload))
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	_, _ = mac.Write(signedPayload)
	expected := mac.Sum(nil)

	for _, sig := range v1 {
		candidate, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(candidate, expected) {
			return true
		}
	}

	return false
}
