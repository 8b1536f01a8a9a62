package repository

import (
	"concert-booking/internal/model"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type SeatRepository interface {
	// 取得某場次指定 label 的座位 (含 booked 與 version)
	FindByDateAndLabels(ctx context.Context, date time.Time, labels []string) ([]*model.Seat, error)
	// 依狀態列出某場次的座位
	FindByDate(ctx context.Context, date time.Time, status model.SeatStatus) ([]*model.Seat, error)
	// 取得某場次的可用座位數與總座位數
	CountAvailability(ctx context.Context, date time.Time) (available int, total int, err error)

	// Transaction methods
	MarkBookedWithVersion(ctx context.Context, tx pgx.Tx, seatID int64, expectedVersion int64) error
}

type SeatRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSeatRepository(pool *pgxpool.Pool) SeatRepository {
	return &SeatRepositoryImpl{
		pool: pool,
	}
}

const seatColumns = `id, label, date, is_booked, price::text, version`

func scanSeat(row pgx.Row) (*model.Seat, error) {
	var (
		seat  model.Seat
		price string
	)
	err := row.Scan(
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

	return &seat, nil
}

func (r *SeatRepositoryImpl) FindByDateAndLabels(ctx context.Context, date time.Time, labels []string) ([]*model.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE date = $1 AND label = ANY($2)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, date, labels)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]*model.Seat, 0, len(labels))
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (r *SeatRepositoryImpl) FindByDate(ctx context.Context, date time.Time, status model.SeatStatus) ([]*model.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE date = $1
	`
	args := []any{date}
	if status != model.SeatStatusAny {
		query += ` AND is_booked = $2`
		args = append(args, status == model.SeatStatusBooked)
	}
	query += ` ORDER BY label`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]*model.Seat, 0)
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (r *SeatRepositoryImpl) CountAvailability(ctx context.Context, date time.Time) (int, int, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE NOT is_booked), COUNT(*)
		FROM seats
		WHERE date = $1
	`

	var available, total int
	if err := r.pool.QueryRow(ctx, query, date).Scan(&available, &total); err != nil {
		return 0, 0, err
	}

	return available, total, nil
}

// MarkBookedWithVersion 只有在版本未變且尚未被訂時才會寫入，否則回傳 ErrVersionConflict
func (r *SeatRepositoryImpl) MarkBookedWithVersion(ctx context.Context, tx pgx.Tx, seatID int64, expectedVersion int64) error {
	query := `
		UPDATE seats
		SET is_booked = TRUE, version = version + 1
		WHERE id = $1 AND version = $2 AND is_booked = FALSE
	`

	result, err := tx.Exec(ctx, query, seatID, expectedVersion)
	if err != nil {
		return translateConflict(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrVersionConflict
	}

	return nil
}
