package repository

import (
	"context"
	"errors"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

var ErrEmailLogNotFound = errors.New("email log not found")

type EmailLogRepository struct {
	db DBTX
}

func NewEmailLogRepository(db DBTX) *EmailLogRepository {
	return &EmailLogRepository{db: db}
}

func (r *EmailLogRepository) Create(ctx context.Context, log *entity.EmailLog) error {
	query := `
		INSERT INTO email_logs (
			email_type, recipient, reservation_id, status,
			attempted_at, sent_at, error_message
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		log.EmailType,
		log.Recipient,
		log.ReservationID,
		log.Status,
		log.AttemptedAt,
		nullableTimeValue(log.SentAt),
		nullableStringValue(log.ErrorMessage),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = uint64(id)
	return nil
}

func (r *EmailLogRepository) UpdateStatus(ctx context.Context, log *entity.EmailLog) error {
	query := `
		UPDATE email_logs SET
			status = ?,
			sent_at = ?,
			error_message = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		log.Status,
		nullableTimeValue(log.SentAt),
		nullableStringValue(log.ErrorMessage),
		log.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEmailLogNotFound
	}
	return nil
}

// HasSent reports whether a sent log of the given type already exists for the
// reservation; the reminder and thank-you batches use it for deduplication.
func (r *EmailLogRepository) HasSent(ctx context.Context, reservationID uint64, emailType string) (bool, error) {
	query := `
		SELECT COUNT(1)
		FROM email_logs
		WHERE reservation_id = ? AND email_type = ? AND status = ?
	`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, reservationID, emailType, entity.EmailStatusSent).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
