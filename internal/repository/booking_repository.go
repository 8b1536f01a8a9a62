package repository

import (
	"concert-booking/internal/model"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindByUserID(ctx context.Context, userID int64) ([]*model.Booking, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, concert_id, date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, booking.UserID, booking.ConcertID, booking.Date).Scan(
		&booking.ID,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	seatIDs := make([]int64, 0, len(booking.Seats))
	for _, s := range booking.Seats {
		seatIDs = append(seatIDs, s.ID)
	}

	// booking_seats.seat_id 有 unique 限制，同一座位不可能屬於兩筆預訂
	_, err = tx.Exec(ctx, `
		INSERT INTO booking_seats (booking_id, seat_id)
		SELECT $1, unnest($2::bigint[])
	`, booking.ID, seatIDs)
	if err != nil {
		return nil, translateConflict(err)
	}

	booking.TotalPrice = model.TotalOf(booking.Seats)

	return booking, nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, user_id, concert_id, date, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ConcertID,
		&booking.Date,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	seats, err := r.findSeats(ctx, []int64{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Seats = seats[booking.ID]
	booking.TotalPrice = model.TotalOf(booking.Seats)

	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByUserID(ctx context.Context, userID int64) ([]*model.Booking, error) {
	query := `
		SELECT id, user_id, concert_id, date, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		var booking model.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ConcertID,
			&booking.Date,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &booking)
		ids = append(ids, booking.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return bookings, nil
	}

	seats, err := r.findSeats(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		b.Seats = seats[b.ID]
		b.TotalPrice = model.TotalOf(b.Seats)
	}

	return bookings, nil
}

// findSeats 一次取回多筆預訂的座位，依 booking id 分組
func (r *BookingRepositoryImpl) findSeats(ctx context.Context, bookingIDs []int64) (map[int64][]*model.Seat, error) {
	query := `
		SELECT bs.booking_id, s.id, s.label, s.date, s.is_booked, s.price::text, s.version
		FROM booking_seats bs
		JOIN seats s ON s.id = bs.seat_id
		WHERE bs.booking_id = ANY($1)
		ORDER BY bs.booking_id, s.id
	`

	rows, err := r.pool.Query(ctx, query, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]*model.Seat, len(bookingIDs))
	for rows.Next() {
		var (
			bookingID int64
			seat      model.Seat
			price     string
		)
		err := rows.Scan(
			&bookingID,
			&seat.ID,
			&seat.Label,
			&seat.Date,
			&seat.IsBooked,
			&price,
			&seat.Version,
		)
		if err != nil {
			return nil, err
		}
		seat.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", price, err)
		}
		result[bookingID] = append(result[bookingID], &seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
