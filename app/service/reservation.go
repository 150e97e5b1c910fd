package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/factory"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/provider"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/repository"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
	"github.com/Danieliragi/johnserviceMotel-sub001/config"
)

const defaultListLimit = int32(100)

type reservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	Update(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uint64) (*entity.Reservation, error)
	FindDetailByID(ctx context.Context, id uint64) (*entity.ReservationDetail, error)
	List(ctx context.Context, limit, offset int32) ([]*entity.Reservation, error)
	ListCheckInsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*entity.Reservation, error)
	ListCheckOutsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*entity.Reservation, error)
}

type paymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uint64) (*entity.Payment, error)
	FindByReference(ctx context.Context, reference string) (*entity.Payment, error)
	List(ctx context.Context, limit, offset int32) ([]*entity.Payment, error)
}

type analyticsEventRepository interface {
	Create(ctx context.Context, event *entity.PaymentAnalyticsEvent) error
}

type webhookEventRepository interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
	SetError(ctx context.Context, id uint64, message string) error
}

type roomRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.Room, error)
	List(ctx context.Context) ([]*entity.Room, error)
}

type clientRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.Client, error)
}

type ReservationService struct {
	reservationRepo reservationRepository
	paymentRepo     paymentRepository
	analyticsRepo   analyticsEventRepository
	webhookRepo     webhookEventRepository
	roomRepo        roomRepository
	clientRepo      clientRepository
	notifier        *Notifier
	stripe          provider.Provider
	notifCfg        config.NotificationsConfig
	jobsCfg         config.JobsConfig
	logger          logrus.FieldLogger
}

func NewReservationService(
	reservationRepo reservationRepository,
	paymentRepo paymentRepository,
	analyticsRepo analyticsEventRepository,
	webhookRepo webhookEventRepository,
	roomRepo roomRepository,
	clientRepo clientRepository,
	notifier *Notifier,
	stripe provider.Provider,
	notifCfg config.NotificationsConfig,
	jobsCfg config.JobsConfig,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		analyticsRepo:   analyticsRepo,
		webhookRepo:     webhookRepo,
		roomRepo:        roomRepo,
		clientRepo:      clientRepo,
		notifier:        notifier,
		stripe:          stripe,
		notifCfg:        notifCfg,
		jobsCfg:         jobsCfg,
		logger:          factory.NewModuleLogger("reservation-service"),
	}
}

// CreateReservation records a pending booking from the public form. The
// actual confirmation happens out-of-band over WhatsApp; the returned link is
// prefilled with the booking details.
func (s *ReservationService) CreateReservation(ctx context.Context, req *types.CreateReservationRequest) (*entity.Reservation, string, error) {
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", ErrClientNotFound
	}

	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, "", err
	}
	if room == nil {
		return nil, "", ErrRoomNotFound
	}
	if !room.Available {
		return nil, "", ErrRoomUnavailable
	}

	now := time.Now().UTC()
	reservation := &entity.Reservation{
		Code:          newBookingCode(),
		ClientID:      req.ClientID,
		RoomID:        req.RoomID,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Status:        entity.ReservationStatusPending,
		PaymentStatus: entity.ReservationPaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, "", err
	}

	s.notifier.Notify(ctx, NotificationData{
		EmailType:     entity.EmailTypeReservationConfirmation,
		ReservationID: reservation.ID,
		Code:          reservation.Code,
		ClientName:    client.Name,
		ClientEmail:   client.Email,
		RoomName:      room.Name,
		CheckIn:       reservation.CheckIn,
		CheckOut:      reservation.CheckOut,
		NewStatus:     reservation.Status,
	})

	return reservation, s.whatsAppLink(reservation, room), nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id uint64) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

func (s *ReservationService) ListReservations(ctx context.Context, limit, offset int32) ([]*entity.Reservation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.reservationRepo.List(ctx, limit, offset)
}

// UpdateReservation applies a partial admin edit. A status change is
// persisted first, then handed to the notifier; equal status is a no-op for
// notifications.
func (s *ReservationService) UpdateReservation(ctx context.Context, req *types.UpdateReservationRequest) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	oldStatus := reservation.Status
	if req.ClientID != nil {
		reservation.ClientID = *req.ClientID
	}
	if req.RoomID != nil {
		reservation.RoomID = *req.RoomID
	}
	if req.CheckIn != nil {
		reservation.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		reservation.CheckOut = *req.CheckOut
	}
	if req.Statut != nil {
		reservation.Status = *req.Statut
	}
	if req.PaymentStatus != nil {
		reservation.PaymentStatus = *req.PaymentStatus
	}
	reservation.UpdatedAt = time.Now().UTC()

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	if reservation.Status != oldStatus {
		s.notifyStatusChange(ctx, reservation.ID, oldStatus, reservation.Status)
	}

	return reservation, nil
}

func (s *ReservationService) ListRooms(ctx context.Context) ([]*entity.Room, error) {
	return s.roomRepo.List(ctx)
}

func (s *ReservationService) GetRoom(ctx context.Context, id uint64) (*entity.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *ReservationService) ListPayments(ctx context.Context, limit, offset int32) ([]*entity.Payment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.paymentRepo.List(ctx, limit, offset)
}

// CreatePayment is the admin direct-insert path.
func (s *ReservationService) CreatePayment(ctx context.Context, req *types.CreatePaymentRequest) (*entity.Payment, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	now := time.Now().UTC()
	payment := &entity.Payment{
		ReservationID: req.ReservationID,
		AmountCents:   req.Montant,
		Currency:      strings.ToUpper(strings.TrimSpace(req.Devise)),
		Method:        strings.TrimSpace(req.Methode),
		Status:        req.Statut,
		Reference:     strings.TrimSpace(req.Reference),
		RawDetails:    "{}",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrPaymentAlreadyExists) {
			return nil, ErrPaymentAlreadyExists
		}
		return nil, err
	}
	return payment, nil
}

func (s *ReservationService) notifyStatusChange(ctx context.Context, reservationID uint64, oldStatus, newStatus string) {
	detail, err := s.reservationRepo.FindDetailByID(ctx, reservationID)
	if err != nil || detail == nil {
		s.logger.WithError(err).WithField("reservation_id", reservationID).Warn("status_change_lookup_failed")
		return
	}

	s.notifier.NotifyStatusChange(ctx, NotificationData{
		ReservationID: detail.ID,
		Code:          detail.Code,
		ClientName:    detail.ClientName,
		ClientEmail:   detail.ClientEmail,
		RoomName:      detail.RoomName,
		CheckIn:       detail.CheckIn,
		CheckOut:      detail.CheckOut,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
	})
}

func (s *ReservationService) whatsAppLink(reservation *entity.Reservation, room *entity.Room) string {
	number := strings.TrimLeft(strings.TrimSpace(s.notifCfg.WhatsAppNumber), "+")
	if number == "" {
		return ""
	}
	text := fmt.Sprintf(
		"Hello, I would like to confirm reservation %s for %s, check-in %s, check-out %s.",
		reservation.Code,
		room.Name,
		reservation.CheckIn.Format("2006-01-02"),
		reservation.CheckOut.Format("2006-01-02"),
	)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

func newBookingCode() string {
	return "RES-" + strings.ToUpper(uuid.NewString()[:8])
}
