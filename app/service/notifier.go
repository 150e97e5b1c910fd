package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/factory"
)

type MailMessage struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) error
}

// ConsoleMailer logs outbound mail instead of delivering it. Real SMTP
// delivery is out of scope; the email log still records every attempt.
type ConsoleMailer struct {
	logger logrus.FieldLogger
}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{logger: factory.NewModuleLogger("mailer")}
}

func (m *ConsoleMailer) Send(_ context.Context, msg *MailMessage) error {
	m.logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email_sent")
	return nil
}

type emailLogRepository interface {
	Create(ctx context.Context, log *entity.EmailLog) error
	UpdateStatus(ctx context.Context, log *entity.EmailLog) error
	HasSent(ctx context.Context, reservationID uint64, emailType string) (bool, error)
}

// NotificationData carries everything a reservation notification needs. The
// four email types share this shape and control flow.
type NotificationData struct {
	EmailType string

	ReservationID uint64
	Code          string
	ClientName    string
	ClientEmail   string
	RoomName      string
	CheckIn       time.Time
	CheckOut      time.Time

	OldStatus string
	NewStatus string
}

type Notifier struct {
	emailLogRepo emailLogRepository
	mailer       Mailer
	fromEmail    string
	logger       logrus.FieldLogger
}

func NewNotifier(emailLogRepo emailLogRepository, mailer Mailer, fromEmail string) *Notifier {
	return &Notifier{
		emailLogRepo: emailLogRepo,
		mailer:       mailer,
		fromEmail:    fromEmail,
		logger:       factory.NewModuleLogger("notifier"),
	}
}

// NotifyStatusChange logs and attempts a status-update notification. Delivery
// failure never propagates past the notifier; the caller proceeds regardless.
func (n *Notifier) NotifyStatusChange(ctx context.Context, data NotificationData) bool {
	data.EmailType = entity.EmailTypeStatusUpdate
	return n.Notify(ctx, data)
}

func (n *Notifier) Notify(ctx context.Context, data NotificationData) bool {
	now := time.Now().UTC()
	log := &entity.EmailLog{
		EmailType:     data.EmailType,
		Recipient:     data.ClientEmail,
		ReservationID: data.ReservationID,
		Status:        entity.EmailStatusPending,
		AttemptedAt:   now,
	}
	if err := n.emailLogRepo.Create(ctx, log); err != nil {
		n.logger.WithError(err).WithField("reservation_id", data.ReservationID).Error("email_log_create_failed")
		return false
	}

	msg := &MailMessage{
		From:    n.fromEmail,
		To:      data.ClientEmail,
		Subject: subjectFor(data),
		Body:    bodyFor(data),
	}

	sendErr := n.mailer.Send(ctx, msg)
	if sendErr != nil {
		errMsg := sendErr.Error()
		log.Status = entity.EmailStatusFailed
		log.ErrorMessage = &errMsg
	} else {
		sentAt := time.Now().UTC()
		log.Status = entity.EmailStatusSent
		log.SentAt = &sentAt
	}

	if err := n.emailLogRepo.UpdateStatus(ctx, log); err != nil {
		n.logger.WithError(err).WithField("email_log_id", log.ID).Error("email_log_update_failed")
		return false
	}
	if sendErr != nil {
		n.logger.WithError(sendErr).WithField("reservation_id", data.ReservationID).Warn("notification_delivery_failed")
		return false
	}

	return true
}

func subjectFor(data NotificationData) string {
	switch data.EmailType {
	case entity.EmailTypeReservationConfirmation:
		return fmt.Sprintf("Reservation %s received", data.Code)
	case entity.EmailTypeStatusUpdate:
		return fmt.Sprintf("Reservation %s is now %s", data.Code, data.NewStatus)
	case entity.EmailTypePreArrivalReminder:
		return fmt.Sprintf("See you soon, reservation %s checks in on %s", data.Code, data.CheckIn.Format("2006-01-02"))
	case entity.EmailTypePostStayThankYou:
		return fmt.Sprintf("Thank you for staying with us, %s", data.ClientName)
	default:
		return fmt.Sprintf("Reservation %s update", data.Code)
	}
}

func bodyFor(data NotificationData) string {
	body := fmt.Sprintf(
		"Hello %s,\n\nReservation %s, room %s, check-in %s, check-out %s.",
		data.ClientName,
		data.Code,
		data.RoomName,
		data.CheckIn.Format("2006-01-02"),
		data.CheckOut.Format("2006-01-02"),
	)
	if data.EmailType == entity.EmailTypeStatusUpdate {
		body += fmt.Sprintf("\nStatus changed from %s to %s.", data.OldStatus, data.NewStatus)
	}
	return body
}
