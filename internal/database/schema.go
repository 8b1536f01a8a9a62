package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// booking_seats.seat_id unique：即使版本檢查被繞過，同一座位也只能出現在一筆預訂
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS concerts (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS concert_dates (
	concert_id BIGINT NOT NULL REFERENCES concerts(id),
	date TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (concert_id, date)
);
CREATE TABLE IF NOT EXISTS seats (
	id BIGSERIAL PRIMARY KEY,
	label TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL,
	is_booked BOOLEAN NOT NULL DEFAULT FALSE,
	price NUMERIC(10, 2) NOT NULL,
	version BIGINT NOT NULL DEFAULT 0,
	UNIQUE (date, label)
);
CREATE TABLE IF NOT EXISTS bookings (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL,
	concert_id BIGINT NOT NULL,
	date TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS booking_seats (
	booking_id BIGINT NOT NULL REFERENCES bookings(id),
	seat_id BIGINT NOT NULL UNIQUE REFERENCES seats(id)
);
`

// Migrate 建立資料表，已存在時不變更
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
