package service

import (
	"context"
	"time"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

const defaultBatchSize = int32(100)

// RunPreArrivalReminderBatch sends a reminder to confirmed reservations
// checking in within the configured lead window, at most once per
// reservation.
func (s *ReservationService) RunPreArrivalReminderBatch(ctx context.Context) error {
	now := time.Now().UTC()
	to := now.Add(s.jobsCfg.ReminderLeadTime)

	items, err := s.reservationRepo.ListCheckInsBetween(ctx, now, to, s.batchSize())
	if err != nil {
		return err
	}

	return s.notifyBatch(ctx, items, entity.EmailTypePreArrivalReminder)
}

// RunPostStayThankYouBatch thanks guests whose check-out fell inside the
// lookback window, at most once per reservation.
func (s *ReservationService) RunPostStayThankYouBatch(ctx context.Context) error {
	now := time.Now().UTC()
	from := now.Add(-s.jobsCfg.ThankYouLookback)

	items, err := s.reservationRepo.ListCheckOutsBetween(ctx, from, now, s.batchSize())
	if err != nil {
		return err
	}

	return s.notifyBatch(ctx, items, entity.EmailTypePostStayThankYou)
}

func (s *ReservationService) notifyBatch(ctx context.Context, items []*entity.Reservation, emailType string) error {
	var firstErr error
	for _, reservation := range items {
		if reservation == nil {
			continue
		}

		sent, err := s.notifier.emailLogRepo.HasSent(ctx, reservation.ID, emailType)
		if err != nil {
			firstErr = keepFirstErr(firstErr, err)
			continue
		}
		if sent {
			continue
		}

		detail, err := s.reservationRepo.FindDetailByID(ctx, reservation.ID)
		if err != nil {
			firstErr = keepFirstErr(firstErr, err)
			continue
		}
		if detail == nil {
			continue
		}

		s.notifier.Notify(ctx, NotificationData{
			EmailType:     emailType,
			ReservationID: detail.ID,
			Code:          detail.Code,
			ClientName:    detail.ClientName,
			ClientEmail:   detail.ClientEmail,
			RoomName:      detail.RoomName,
			CheckIn:       detail.CheckIn,
			CheckOut:      detail.CheckOut,
			NewStatus:     detail.Status,
		})
	}

	return firstErr
}

func (s *ReservationService) batchSize() int32 {
	if s.jobsCfg.BatchSize > 0 {
		return s.jobsCfg.BatchSize
	}
	return defaultBatchSize
}

func keepFirstErr(current error, candidate error) error {
	if current != nil {
		return current
	}
	return candidate
}
