package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/provider"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/repository"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
	"github.com/Danieliragi/johnserviceMotel-sub001/config"
)

type fakeReservationRepo struct {
	reservations map[uint64]*entity.Reservation
	details      map[uint64]*entity.ReservationDetail
	nextID       uint64
	findErr      error
	updateErr    error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: map[uint64]*entity.Reservation{},
		details:      map[uint64]*entity.ReservationDetail{},
		nextID:       1,
	}
}

func (r *fakeReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	id := r.nextID
	r.nextID++
	copyItem := *reservation
	copyItem.ID = id
	r.reservations[id] = &copyItem
	reservation.ID = id
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, reservation *entity.Reservation) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.reservations[reservation.ID]; !ok {
		return errors.New("reservation row missing")
	}
	copyItem := *reservation
	r.reservations[reservation.ID] = &copyItem
	return nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id uint64) (*entity.Reservation, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	item, ok := r.reservations[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

func (r *fakeReservationRepo) FindDetailByID(_ context.Context, id uint64) (*entity.ReservationDetail, error) {
	item, ok := r.details[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	if current, ok := r.reservations[id]; ok {
		copyItem.Reservation = *current
	}
	return &copyItem, nil
}

func (r *fakeReservationRepo) List(_ context.Context, limit, offset int32) ([]*entity.Reservation, error) {
	items := make([]*entity.Reservation, 0)
	for _, item := range r.reservations {
		copyItem := *item
		items = append(items, &copyItem)
	}
	return items, nil
}

func (r *fakeReservationRepo) ListCheckInsBetween(_ context.Context, from, to time.Time, limit int32) ([]*entity.Reservation, error) {
	items := make([]*entity.Reservation, 0)
	for _, item := range r.reservations {
		if item.Status != entity.ReservationStatusConfirmed {
			continue
		}
		if item.CheckIn.Before(from) || !item.CheckIn.Before(to) {
			continue
		}
		copyItem := *item
		items = append(items, &copyItem)
	}
	return items, nil
}

func (r *fakeReservationRepo) ListCheckOutsBetween(_ context.Context, from, to time.Time, limit int32) ([]*entity.Reservation, error) {
	items := make([]*entity.Reservation, 0)
	for _, item := range r.reservations {
		if item.Status != entity.ReservationStatusConfirmed {
			continue
		}
		if item.CheckOut.Before(from) || !item.CheckOut.Before(to) {
			continue
		}
		copyItem := *item
		items = append(items, &copyItem)
	}
	return items, nil
}

type fakePaymentRepo struct {
	payments map[uint64]*entity.Payment
	nextID   uint64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uint64]*entity.Payment{}, nextID: 1}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	for _, item := range r.payments {
		if item.Reference == payment.Reference {
			return repository.ErrPaymentAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	copyItem := *payment
	copyItem.ID = id
	r.payments[id] = &copyItem
	payment.ID = id
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *entity.Payment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return repository.ErrPaymentNotFound
	}
	copyItem := *payment
	r.payments[payment.ID] = &copyItem
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uint64) (*entity.Payment, error) {
	item, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

func (r *fakePaymentRepo) FindByReference(_ context.Context, reference string) (*entity.Payment, error) {
	for _, item := range r.payments {
		if item.Reference == reference {
			copyItem := *item
			return &copyItem, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) List(_ context.Context, limit, offset int32) ([]*entity.Payment, error) {
	items := make([]*entity.Payment, 0)
	for _, item := range r.payments {
		copyItem := *item
		items = append(items, &copyItem)
	}
	return items, nil
}

type fakeAnalyticsRepo struct {
	events []*entity.PaymentAnalyticsEvent
}

func (r *fakeAnalyticsRepo) Create(_ context.Context, event *entity.PaymentAnalyticsEvent) error {
	copyItem := *event
	r.events = append(r.events, &copyItem)
	return nil
}

type fakeWebhookRepo struct {
	events    map[string]*entity.WebhookEvent
	errorByID map[uint64]string
	nextID    uint64
}

func newFakeWebhookRepo() *fakeWebhookRepo {
	return &fakeWebhookRepo{
		events:    map[string]*entity.WebhookEvent{},
		errorByID: map[uint64]string{},
		nextID:    1,
	}
}

func (r *fakeWebhookRepo) Create(_ context.Context, event *entity.WebhookEvent) error {
	if event.ProviderEventID != "" {
		if _, ok := r.events[event.ProviderEventID]; ok {
			return repository.ErrWebhookEventAlreadyExists
		}
	}
	id := r.nextID
	r.nextID++
	copyItem := *event
	copyItem.ID = id
	key := event.ProviderEventID
	if key == "" {
		key = "rejected-" + time.Now().String()
	}
	r.events[key] = &copyItem
	event.ID = id
	return nil
}

func (r *fakeWebhookRepo) SetError(_ context.Context, id uint64, message string) error {
	r.errorByID[id] = message
	return nil
}

type fakeRoomRepo struct {
	rooms map[uint64]*entity.Room
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uint64) (*entity.Room, error) {
	item, ok := r.rooms[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

func (r *fakeRoomRepo) List(_ context.Context) ([]*entity.Room, error) {
	items := make([]*entity.Room, 0)
	for _, item := range r.rooms {
		copyItem := *item
		items = append(items, &copyItem)
	}
	return items, nil
}

type fakeClientRepo struct {
	clients map[uint64]*entity.Client
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uint64) (*entity.Client, error) {
	item, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

type fakeEmailLogRepo struct {
	logs      []*entity.EmailLog
	createErr error
	nextID    uint64
}

func (r *fakeEmailLogRepo) Create(_ context.Context, log *entity.EmailLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	copyItem := *log
	copyItem.ID = r.nextID
	r.logs = append(r.logs, &copyItem)
	log.ID = r.nextID
	return nil
}

func (r *fakeEmailLogRepo) UpdateStatus(_ context.Context, log *entity.EmailLog) error {
	for i, item := range r.logs {
		if item.ID == log.ID {
			copyItem := *log
			r.logs[i] = &copyItem
			return nil
		}
	}
	return errors.New("email log row missing")
}

func (r *fakeEmailLogRepo) HasSent(_ context.Context, reservationID uint64, emailType string) (bool, error) {
	for _, item := range r.logs {
		if item.ReservationID == reservationID && item.EmailType == emailType && item.Status == entity.EmailStatusSent {
			return true, nil
		}
	}
	return false, nil
}

type fakeMailer struct {
	sent    []*MailMessage
	sendErr error
}

func (m *fakeMailer) Send(_ context.Context, msg *MailMessage) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	copyItem := *msg
	m.sent = append(m.sent, &copyItem)
	return nil
}

type fakeStripeProvider struct {
	event *provider.WebhookEvent
	err   error
}

func (p *fakeStripeProvider) Name() string {
	return "stripe"
}

func (p *fakeStripeProvider) VerifyAndParseWebhook(_ context.Context, payload []byte, _ string) (*provider.WebhookEvent, error) {
	if p.err != nil {
		return nil, p.err
	}
	event := *p.event
	event.RawPayload = string(payload)
	return &event, nil
}

type reservationFixture struct {
	reservationRepo *fakeReservationRepo
	paymentRepo     *fakePaymentRepo
	analyticsRepo   *fakeAnalyticsRepo
	webhookRepo     *fakeWebhookRepo
	roomRepo        *fakeRoomRepo
	clientRepo      *fakeClientRepo
	emailLogRepo    *fakeEmailLogRepo
	mailer          *fakeMailer
	stripe          *fakeStripeProvider
	svc             *ReservationService
}

func newReservationFixture() *reservationFixture {
	f := &reservationFixture{
		reservationRepo: newFakeReservationRepo(),
		paymentRepo:     newFakePaymentRepo(),
		analyticsRepo:   &fakeAnalyticsRepo{},
		webhookRepo:     newFakeWebhookRepo(),
		roomRepo:        &fakeRoomRepo{rooms: map[uint64]*entity.Room{}},
		clientRepo:      &fakeClientRepo{clients: map[uint64]*entity.Client{}},
		emailLogRepo:    &fakeEmailLogRepo{},
		mailer:          &fakeMailer{},
		stripe:          &fakeStripeProvider{},
	}
	notifier := NewNotifier(f.emailLogRepo, f.mailer, "reservations@motel.example")
	f.svc = NewReservationService(
		f.reservationRepo,
		f.paymentRepo,
		f.analyticsRepo,
		f.webhookRepo,
		f.roomRepo,
		f.clientRepo,
		notifier,
		f.stripe,
		config.NotificationsConfig{
			FromEmail:      "reservations@motel.example",
			WhatsAppNumber: "+243970000000",
		},
		config.JobsConfig{
			ReminderLeadTime: 24 * time.Hour,
			ThankYouLookback: 24 * time.Hour,
			BatchSize:        100,
		},
	)
	return f
}

func (f *reservationFixture) seedClient(id uint64) {
	f.clientRepo.clients[id] = &entity.Client{ID: id, Name: "Jean Mutombo", Email: "jean@example.com"}
}

func (f *reservationFixture) seedRoom(id uint64, available bool) {
	f.roomRepo.rooms[id] = &entity.Room{ID: id, Name: "Chambre Standard", PriceCents: 45000, Currency: "USD", Capacity: 2, Available: available}
}

func (f *reservationFixture) seedReservation(id uint64, status, paymentStatus string) *entity.Reservation {
	reservation := &entity.Reservation{
		ID:            id,
		Code:          "RES-ABCD1234",
		ClientID:      1,
		RoomID:        1,
		CheckIn:       time.Now().UTC().Add(48 * time.Hour),
		CheckOut:      time.Now().UTC().Add(72 * time.Hour),
		Status:        status,
		PaymentStatus: paymentStatus,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	f.reservationRepo.reservations[id] = reservation
	f.reservationRepo.details[id] = &entity.ReservationDetail{
		Reservation: *reservation,
		ClientName:  "Jean Mutombo",
		ClientEmail: "jean@example.com",
		RoomName:    "Chambre Standard",
	}
	if id >= f.reservationRepo.nextID {
		f.reservationRepo.nextID = id + 1
	}
	return reservation
}

func TestCreateReservationStartsPendingUnpaid(t *testing.T) {
	f := newReservationFixture()
	f.seedClient(1)
	f.seedRoom(1, true)

	checkIn := time.Now().UTC().Add(48 * time.Hour)
	reservation, link, err := f.svc.CreateReservation(context.Background(), &types.CreateReservationRequest{
		ClientID: 1,
		RoomID:   1,
		CheckIn:  checkIn,
		CheckOut: checkIn.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create reservation failed: %v", err)
	}
	if reservation.Status != entity.ReservationStatusPending {
		t.Fatalf("expected pending status, got %q", reservation.Status)
	}
	if reservation.PaymentStatus != entity.ReservationPaymentUnpaid {
		t.Fatalf("expected unpaid payment status, got %q", reservation.PaymentStatus)
	}
	if !strings.HasPrefix(reservation.Code, "RES-") {
		t.Fatalf("expected RES- booking code, got %q", reservation.Code)
	}
	if !strings.HasPrefix(link, "https://wa.me/243970000000?text=") {
		t.Fatalf("unexpected whatsapp link %q", link)
	}
	if len(f.emailLogRepo.logs) != 1 {
		t.Fatalf("expected one confirmation email log, got %d", len(f.emailLogRepo.logs))
	}
	if f.emailLogRepo.logs[0].EmailType != entity.EmailTypeReservationConfirmation {
		t.Fatalf("expected confirmation email type, got %q", f.emailLogRepo.logs[0].EmailType)
	}
}

func TestCreateReservationUnknownClient(t *testing.T) {
	f := newReservationFixture()
	f.seedRoom(1, true)

	checkIn := time.Now().UTC().Add(48 * time.Hour)
	_, _, err := f.svc.CreateReservation(context.Background(), &types.CreateReservationRequest{
		ClientID: 42,
		RoomID:   1,
		CheckIn:  checkIn,
		CheckOut: checkIn.Add(24 * time.Hour),
	})
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestCreateReservationRoomUnavailable(t *testing.T) {
	f := newReservationFixture()
	f.seedClient(1)
	f.seedRoom(1, false)

	checkIn := time.Now().UTC().Add(48 * time.Hour)
	_, _, err := f.svc.CreateReservation(context.Background(), &types.CreateReservationRequest{
		ClientID: 1,
		RoomID:   1,
		CheckIn:  checkIn,
		CheckOut: checkIn.Add(24 * time.Hour),
	})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("expected ErrRoomUnavailable, got %v", err)
	}
}

func TestUpdateReservationStatusChangeNotifiesOnce(t *testing.T) {
	f := newReservationFixture()
	f.seedReservation(1, entity.ReservationStatusPending, entity.ReservationPaymentUnpaid)

	newStatus := entity.ReservationStatusConfirmed
	updated, err := f.svc.UpdateReservation(context.Background(), &types.UpdateReservationRequest{
		ID:     1,
		Statut: &newStatus,
	})
	if err != nil {
		t.Fatalf("update reservation failed: %v", err)
	}
	if updated.Status != entity.ReservationStatusConfirmed {
		t.Fatalf("expected confirmed status, got %q", updated.Status)
	}
	if len(f.emailLogRepo.logs) != 1 {
		t.Fatalf("expected one status-update email log, got %d", len(f.emailLogRepo.logs))
	}
	if f.emailLogRepo.logs[0].EmailType != entity.EmailTypeStatusUpdate {
		t.Fatalf("expected status_update email type, got %q", f.emailLogRepo.logs[0].EmailType)
	}
	if f.emailLogRepo.logs[0].Status != entity.EmailStatusSent {
		t.Fatalf("expected sent email status, got %q", f.emailLogRepo.logs[0].Status)
	}
}

func TestUpdateReservationSameStatusSkipsNotification(t *testing.T) {
	f := newReservationFixture()
	f.seedReservation(1, entity.ReservationStatusConfirmed, entity.ReservationPaymentPaid)

	sameStatus := entity.ReservationStatusConfirmed
	if _, err := f.svc.UpdateReservation(context.Background(), &types.UpdateReservationRequest{
		ID:     1,
		Statut: &sameStatus,
	}); err != nil {
		t.Fatalf("update reservation failed: %v", err)
	}
	if len(f.emailLogRepo.logs) != 0 {
		t.Fatalf("expected no email log for unchanged status, got %d", len(f.emailLogRepo.logs))
	}
}

func TestUpdateReservationNotFound(t *testing.T) {
	f := newReservationFixture()

	status := entity.ReservationStatusCancelled
	_, err := f.svc.UpdateReservation(context.Background(), &types.UpdateReservationRequest{
		ID:     99,
		Statut: &status,
	})
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestCreatePaymentDuplicateReference(t *testing.T) {
	f := newReservationFixture()
	f.seedReservation(1, entity.ReservationStatusConfirmed, entity.ReservationPaymentPaid)

	req := &types.CreatePaymentRequest{
		ReservationID: 1,
		Montant:       45000,
		Devise:        "USD",
		Methode:       "card",
		Statut:        entity.PaymentStatusComplete,
		Reference:     "pi_test_1",
	}
	if _, err := f.svc.CreatePayment(context.Background(), req); err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	_, err := f.svc.CreatePayment(context.Background(), req)
	if !errors.Is(err, ErrPaymentAlreadyExists) {
		t.Fatalf("expected ErrPaymentAlreadyExists, got %v", err)
	}
}
