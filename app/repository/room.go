package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrClientNotFound = errors.New("client not found")
)

type RoomRepository struct {
	db DBTX
}

func NewRoomRepository(db DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) FindByID(ctx context.Context, id uint64) (*entity.Room, error) {
	query := `
		SELECT id, name, description, price_cents, currency, capacity,
			image_url, available, created_at, updated_at
		FROM rooms
		WHERE id = ?
	`

	room := &entity.Room{}
	if err := scanRoom(r.db.QueryRowContext(ctx, query, id), room); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT id, name, description, price_cents, currency, capacity,
			image_url, available, created_at, updated_at
		FROM rooms
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]*entity.Room, 0)
	for rows.Next() {
		item := &entity.Room{}
		if err := scanRoom(rows, item); err != nil {
			return nil, err
		}
		rooms = append(rooms, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

func scanRoom(scan rowScanner, room *entity.Room) error {
	var imageURL sql.NullString

	err := scan.Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.PriceCents,
		&room.Currency,
		&room.Capacity,
		&imageURL,
		&room.Available,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return err
	}

	room.ImageURL = stringPtrFromNull(imageURL)
	return nil
}

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint64) (*entity.Client, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM clients
		WHERE id = ?
	`

	client := &entity.Client{}
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&phone,
		&client.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	client.Phone = stringPtrFromNull(phone)
	return client, nil
}
