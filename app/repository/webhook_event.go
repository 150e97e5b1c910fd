package repository

import (
	"context"
	"errors"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

// ErrWebhookEventAlreadyExists signals a redelivery of an event that was
// already recorded; the unique (provider, provider_event_id) key enforces it.
var ErrWebhookEventAlreadyExists = errors.New("webhook event already exists")

type WebhookEventRepository struct {
	db DBTX
}

func NewWebhookEventRepository(db DBTX) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

func (r *WebhookEventRepository) Create(ctx context.Context, event *entity.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (
			provider, provider_event_id, event_type, payload_json, status, error, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Provider,
		event.ProviderEventID,
		event.EventType,
		event.PayloadJSON,
		event.Status,
		nullableStringValue(event.Error),
		event.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrWebhookEventAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = uint64(id)
	return nil
}

func (r *WebhookEventRepository) SetError(ctx context.Context, id uint64, message string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE webhook_events SET status = ?, error = ? WHERE id = ?`,
		entity.WebhookEventStatusRejected, message, id)
	return err
}
