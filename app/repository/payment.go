package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists")
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			reservation_id, amount_cents, currency, method, status,
			reference, raw_details, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.ReservationID,
		payment.AmountCents,
		payment.Currency,
		payment.Method,
		payment.Status,
		payment.Reference,
		payment.RawDetails,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPaymentAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	payment.ID = uint64(id)
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments SET
			reservation_id = ?,
			amount_cents = ?,
			currency = ?,
			method = ?,
			status = ?,
			raw_details = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.ReservationID,
		payment.AmountCents,
		payment.Currency,
		payment.Method,
		payment.Status,
		payment.RawDetails,
		payment.UpdatedAt,
		payment.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint64) (*entity.Payment, error) {
	query := `
		SELECT id, reservation_id, amount_cents, currency, method, status,
			reference, raw_details, created_at, updated_at
		FROM payments
		WHERE id = ?
	`

	payment := &entity.Payment{}
	if err := scanPayment(r.db.QueryRowContext(ctx, query, id), payment); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	query := `
		SELECT id, reservation_id, amount_cents, currency, method, status,
			reference, raw_details, created_at, updated_at
		FROM payments
		WHERE reference = ?
		LIMIT 1
	`

	payment := &entity.Payment{}
	if err := scanPayment(r.db.QueryRowContext(ctx, query, reference), payment); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PaymentRepository) List(ctx context.Context, limit, offset int32) ([]*entity.Payment, error) {
	query := `
		SELECT id, reservation_id, amount_cents, currency, method, status,
			reference, raw_details, created_at, updated_at
		FROM payments
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*entity.Payment, 0)
	for rows.Next() {
		item := &entity.Payment{}
		if err := scanPayment(rows, item); err != nil {
			return nil, err
		}
		payments = append(payments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func scanPayment(scan rowScanner, payment *entity.Payment) error {
	return scan.Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.AmountCents,
		&payment.Currency,
		&payment.Method,
		&payment.Status,
		&payment.Reference,
		&payment.RawDetails,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
}
