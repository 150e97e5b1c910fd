package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (
			code, client_id, room_id, check_in, check_out,
			status, payment_status, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		reservation.Code,
		reservation.ClientID,
		reservation.RoomID,
		reservation.CheckIn,
		reservation.CheckOut,
		reservation.Status,
		reservation.PaymentStatus,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reservation.ID = uint64(id)
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations SET
			client_id = ?,
			room_id = ?,
			check_in = ?,
			check_out = ?,
			status = ?,
			payment_status = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		reservation.ClientID,
		reservation.RoomID,
		reservation.CheckIn,
		reservation.CheckOut,
		reservation.Status,
		reservation.PaymentStatus,
		reservation.UpdatedAt,
		reservation.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint64) (*entity.Reservation, error) {
	query := `
		SELECT id, code, client_id, room_id, check_in, check_out,
			status, payment_status, created_at, updated_at
		FROM reservations
		WHERE id = ?
	`

	reservation := &entity.Reservation{}
	if err := scanReservation(r.db.QueryRowContext(ctx, query, id), reservation); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return reservation, nil
}

// FindDetailByID resolves the client and room rows alongside the reservation,
// the lookup join the status notifier needs.
func (r *ReservationRepository) FindDetailByID(ctx context.Context, id uint64) (*entity.ReservationDetail, error) {
	query := `
		SELECT r.id, r.code, r.client_id, r.room_id, r.check_in, r.check_out,
			r.status, r.payment_status, r.created_at, r.updated_at,
			c.name, c.email, rm.name
		FROM reservations r
		JOIN clients c ON c.id = r.client_id
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.id = ?
	`

	detail := &entity.ReservationDetail{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.Code,
		&detail.ClientID,
		&detail.RoomID,
		&detail.CheckIn,
		&detail.CheckOut,
		&detail.Status,
		&detail.PaymentStatus,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.ClientName,
		&detail.ClientEmail,
		&detail.RoomName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *ReservationRepository) List(ctx context.Context, limit, offset int32) ([]*entity.Reservation, error) {
	query := `
		SELECT id, code, client_id, room_id, check_in, check_out,
			status, payment_status, created_at, updated_at
		FROM reservations
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReservations(rows)
}

// ListCheckInsBetween returns confirmed reservations whose check-in falls in
// [from, to); used by the pre-arrival reminder batch.
func (r *ReservationRepository) ListCheckInsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*entity.Reservation, error) {
	query := `
		SELECT id, code, client_id, room_id, check_in, check_out,
			status, payment_status, created_at, updated_at
		FROM reservations
		WHERE status = ?
		  AND check_in >= ?
		  AND check_in < ?
		ORDER BY check_in ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, entity.ReservationStatusConfirmed, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReservations(rows)
}

// ListCheckOutsBetween returns confirmed reservations whose check-out falls in
// [from, to); used by the post-stay thank-you batch.
func (r *ReservationRepository) ListCheckOutsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*entity.Reservation, error) {
	query := `
		SELECT id, code, client_id, room_id, check_in, check_out,
			status, payment_status, created_at, updated_at
		FROM reservations
		WHERE status = ?
		  AND check_out >= ?
		  AND check_out < ?
		ORDER BY check_out ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, entity.ReservationStatusConfirmed, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]*entity.Reservation, error) {
	reservations := make([]*entity.Reservation, 0)
	for rows.Next() {
		item := &entity.Reservation{}
		if err := scanReservation(rows, item); err != nil {
			return nil, err
		}
		reservations = append(reservations, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

func scanReservation(scan rowScanner, reservation *entity.Reservation) error {
	return scan.Scan(
		&reservation.ID,
		&reservation.Code,
		&reservation.ClientID,
		&reservation.RoomID,
		&reservation.CheckIn,
		&reservation.CheckOut,
		&reservation.Status,
		&reservation.PaymentStatus,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
}
