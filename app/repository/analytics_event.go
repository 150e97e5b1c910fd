package repository

import (
	"context"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

type AnalyticsEventRepository struct {
	db DBTX
}

func NewAnalyticsEventRepository(db DBTX) *AnalyticsEventRepository {
	return &AnalyticsEventRepository{db: db}
}

func (r *AnalyticsEventRepository) Create(ctx context.Context, event *entity.PaymentAnalyticsEvent) error {
	query := `
		INSERT INTO payment_analytics_events (
			payment_method, amount_cents, currency, status, error_message, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		event.PaymentMethod,
		event.AmountCents,
		event.Currency,
		event.Status,
		nullableStringValue(event.ErrorMessage),
		event.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = uint64(id)
	return nil
}
