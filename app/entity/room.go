package entity

import "time"

type Room struct {
	ID uint64

	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Capacity    int32
	ImageURL    *string
	Available   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Client struct {
	ID uint64

	Name  string
	Email string
	Phone *string

	CreatedAt time.Time
}
