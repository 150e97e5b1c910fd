package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/provider"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/repository"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
)

// HandleStripeWebhook applies a verified payment outcome to the reservation,
// payment, and analytics records. Each delivery is claimed in webhook_events
// first; a redelivery of the same provider event id short-circuits without
// re-applying effects. The multi-row write sequence itself is not wrapped in
// a transaction, so a mid-sequence failure can leave the rows inconsistent.
func (s *ReservationService) HandleStripeWebhook(ctx context.Context, req *types.StripeWebhookRequest) error {
	event, err := s.stripe.VerifyAndParseWebhook(ctx, req.Payload, req.Signature)
	if err != nil {
		s.recordRejectedWebhook(ctx, req, fmt.Sprintf("webhook validation failed: %v", err))
		return ErrWebhookRejected
	}

	now := time.Now().UTC()
	record := &entity.WebhookEvent{
		Provider:        s.stripe.Name(),
		ProviderEventID: event.ProviderEventID,
		EventType:       event.EventType,
		PayloadJSON:     string(req.Payload),
		Status:          entity.WebhookEventStatusProcessed,
		CreatedAt:       now,
	}
	if err := s.webhookRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrWebhookEventAlreadyExists) {
			s.logger.WithField("provider_event_id", event.ProviderEventID).Info("webhook_event_duplicate_skipped")
			return nil
		}
		return err
	}

	var processErr error
	switch event.Kind {
	case provider.EventKindPaymentSucceeded:
		processErr = s.applyPaymentSucceeded(ctx, event, now)
	case provider.EventKindPaymentFailed:
		processErr = s.applyPaymentFailed(ctx, event, now)
	case provider.EventKindChargeRefunded:
		processErr = s.applyChargeRefunded(ctx, event, now)
	default:
		s.logger.WithField("event_type", event.EventType).Info("webhook_event_ignored")
		return nil
	}

	if processErr != nil {
		if err := s.webhookRepo.SetError(ctx, record.ID, truncate(processErr.Error(), 1024)); err != nil {
			s.logger.WithError(err).WithField("webhook_event_id", record.ID).Warn("webhook_event_error_update_failed")
		}
		return processErr
	}

	return nil
}

func (s *ReservationService) applyPaymentSucceeded(ctx context.Context, event *provider.WebhookEvent, now time.Time) error {
	reservation, err := s.reservationRepo.FindByID(ctx, event.ReservationID)
	if err != nil {
		return err
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %d referenced by event %s", ErrReservationNotFound, event.ReservationID, event.ProviderEventID)
	}

	reservation.Status = entity.ReservationStatusConfirmed
	reservation.PaymentStatus = entity.ReservationPaymentPaid
	reservation.UpdatedAt = now
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return err
	}

	if err := s.upsertCompletedPayment(ctx, event, now); err != nil {
		return err
	}

	return s.analyticsRepo.Create(ctx, &entity.PaymentAnalyticsEvent{
		PaymentMethod: event.PaymentMethod,
		AmountCents:   event.AmountCents,
		Currency:      event.Currency,
		Status:        entity.AnalyticsStatusSuccess,
		CreatedAt:     now,
	})
}

func (s *ReservationService) applyPaymentFailed(ctx context.Context, event *provider.WebhookEvent, now time.Time) error {
	reservation, err := s.reservationRepo.FindByID(ctx, event.ReservationID)
	if err != nil {
		return err
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %d referenced by event %s", ErrReservationNotFound, event.ReservationID, event.ProviderEventID)
	}

	// Reservation status is left untouched on a failed attempt.
	reservation.PaymentStatus = entity.ReservationPaymentFailed
	reservation.UpdatedAt = now
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return err
	}

	errorMessage := normalizeOptionalString(event.ErrorMessage)
	return s.analyticsRepo.Create(ctx, &entity.PaymentAnalyticsEvent{
		PaymentMethod: event.PaymentMethod,
		AmountCents:   event.AmountCents,
		Currency:      event.Currency,
		Status:        entity.AnalyticsStatusFailed,
		ErrorMessage:  errorMessage,
		CreatedAt:     now,
	})
}

func (s *ReservationService) applyChargeRefunded(ctx context.Context, event *provider.WebhookEvent, now time.Time) error {
	payment, err := s.paymentRepo.FindByReference(ctx, event.Reference)
	if err != nil {
		return err
	}
	if payment == nil {
		return fmt.Errorf("%w: reference %s", ErrPaymentNotFound, event.Reference)
	}

	payment.Status = entity.PaymentStatusRefunded
	payment.UpdatedAt = now
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}

	return s.analyticsRepo.Create(ctx, &entity.PaymentAnalyticsEvent{
		PaymentMethod: event.PaymentMethod,
		AmountCents:   event.AmountCents,
		Currency:      event.Currency,
		Status:        entity.AnalyticsStatusRefunded,
		CreatedAt:     now,
	})
}

func (s *ReservationService) upsertCompletedPayment(ctx context.Context, event *provider.WebhookEvent, now time.Time) error {
	payment, err := s.paymentRepo.FindByReference(ctx, event.Reference)
	if err != nil {
		return err
	}

	if payment == nil {
		return s.paymentRepo.Create(ctx, &entity.Payment{
			ReservationID: event.ReservationID,
			AmountCents:   event.AmountCents,
			Currency:      event.Currency,
			Method:        event.PaymentMethod,
			Status:        entity.PaymentStatusComplete,
			Reference:     event.Reference,
			RawDetails:    event.RawPayload,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	payment.Status = entity.PaymentStatusComplete
	payment.AmountCents = event.AmountCents
	payment.RawDetails = event.RawPayload
	payment.UpdatedAt = now
	return s.paymentRepo.Update(ctx, payment)
}

func (s *ReservationService) recordRejectedWebhook(ctx context.Context, req *types.StripeWebhookRequest, reason string) {
	now := time.Now().UTC()
	trimmed := truncate(reason, 1024)
	err := s.webhookRepo.Create(ctx, &entity.WebhookEvent{
		Provider:    s.stripe.Name(),
		PayloadJSON: string(req.Payload),
		Status:      entity.WebhookEventStatusRejected,
		Error:       &trimmed,
		CreatedAt:   now,
	})
	if err != nil && !errors.Is(err, repository.ErrWebhookEventAlreadyExists) {
		s.logger.WithError(err).Warn("rejected_webhook_record_failed")
	}
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max]
}
